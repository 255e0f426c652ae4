package model

// User is API operator allowed to manage customers
type User struct {
	ID           string
	Email        string
	PasswordHash string
}

// Jwt represents signed jwt and unix expires at
type Jwt struct {
	Signed    string
	ExpiresAt int64
}
