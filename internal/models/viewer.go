package models

import "time"

// Viewer is the actor issuing a request. The zero value is an anonymous viewer.
type Viewer struct {
	UserID    string
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

// Anonymous returns the viewer used for requests without a session.
func Anonymous() Viewer { return Viewer{} }

func (v Viewer) Authenticated() bool { return v.UserID != "" }
