// Package model defines the data structures used throughout the application.
package model

// Account is a registered identity record.
//
// PasswordHash holds the full PHC-encoded Argon2id hash (parameters and salt
// included). It is never serialized into API responses — note the json:"-".
// The email carries a UNIQUE constraint in the database; uniqueness failures
// surface as apperror.EmailExists at registration.
type Account struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}
