package middleware

import tele "gopkg.in/telebot.v4"

// AdminOptions defines how admin-only checks should behave.
type AdminOptions struct {
	// AdminID is the only chat allowed through. Zero means no admin is configured and every caller is rejected.
	AdminID  int64
	OnReject tele.HandlerFunc
}

// IsAdmin reports whether the update comes from the configured admin.
func (o AdminOptions) IsAdmin(c tele.Context) bool {
	if o.AdminID == 0 {
		return false
	}
	if s := c.Sender(); s != nil && s.ID == o.AdminID {
		return true
	}
	chat := c.Chat()
	return chat != nil && chat.ID == o.AdminID
}

// AdminOnlyMiddleware lets only the admin reach downstream handlers.
func AdminOnlyMiddleware(opts AdminOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if !opts.IsAdmin(c) {
				if opts.OnReject != nil {
					return opts.OnReject(c)
				}
				return nil
			}
			return next(c)
		}
	}
}
