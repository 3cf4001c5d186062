package domain

import "time"

// Session is the server-side state behind one logged-in admin. The client
// holds only the opaque session id; the state itself lives in the session
// store with an idle TTL that is refreshed on every authenticated request.
type Session struct {
	ID            string
	AdminID       string
	Authenticated bool
	CreatedAt     time.Time
}
