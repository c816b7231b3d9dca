package core

import "time"

// Challenge represents a pending second-factor binding between a login
// attempt and its verification
type Challenge struct {
	Ref       string    // Unique reference handed back to the client
	Subject   string    // Subject identifier from the primary credential
	Code      string    // Second-factor code, delivered out-of-band
	Attempts  int       // Failed verification attempts so far
	IssuedAt  time.Time // When the challenge was created
	ExpiresAt time.Time // When the challenge expires
}

// Session represents an authenticated user session
type Session struct {
	ID        string    // Unique session identifier
	Subject   string    // Subject identifier of the user
	Role      string    // Role granted to the session
	IssuedAt  time.Time // When the session was created
	ExpiresAt time.Time // When the session expires
}
