package dto

import "time"

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID              uint       `json:"id"`
	FName           string     `json:"fname"`
	MName           string     `json:"mname,omitempty"`
	LName           string     `json:"lname"`
	Email           string     `json:"email"`
	Roles           int        `json:"roles"`
	EmailVerifiedAt *time.Time `json:"email_verified_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}
