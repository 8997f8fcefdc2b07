// Package state provides the per-user session store used by conversational bots.
// It is domain-agnostic: callers declare their own State values and answer keys,
// and the store only guarantees create-on-miss reads and per-user serialised updates.
package state
