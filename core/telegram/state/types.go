package state

// State identifies a finite-state-machine step used in conversations.
type State string

// StateUnset is the zero State, used when a session has no position yet.
const StateUnset State = ""

// Session stores conversation state and collected answers for a user.
type Session struct {
	State   State
	Answers map[string]string
}

// NewSession builds a session positioned at st with no answers.
func NewSession(st State) Session {
	return Session{State: st, Answers: make(map[string]string)}
}

// Clone returns a deep copy so callers never share the Answers map with the store.
func (s Session) Clone() Session {
	answers := make(map[string]string, len(s.Answers))
	for k, v := range s.Answers {
		answers[k] = v
	}
	return Session{State: s.State, Answers: answers}
}

// Has reports whether the answer for key has been collected.
func (s Session) Has(key string) bool {
	_, ok := s.Answers[key]
	return ok
}

// Answer returns the collected value for key or an empty string.
func (s Session) Answer(key string) string {
	return s.Answers[key]
}

// Store orchestrates user sessions.
//
// Get has create-on-miss semantics: the first read for a user stores and returns
// the initial session. Update is the only safe read-modify-write path; Get and Put
// on their own are not serialised against concurrent Update calls for the same user.
type Store interface {
	Get(userID int64) Session
	Put(userID int64, sess Session)
	Clear(userID int64)
	Update(userID int64, fn func(Session) (Session, error)) (Session, error)

	Len() int
	CountByState() map[State]int
}
