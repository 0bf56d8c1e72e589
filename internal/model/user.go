package model

import "time"

// User is an account holder. PasswordHash is a bcrypt hash and is never
// exposed through the API.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Bio          string
	MemberSince  time.Time
	LastSeen     time.Time
}
