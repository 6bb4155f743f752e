package models

import "time"

// Draw status constants
const (
	StatusUpcoming  = "upcoming"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// User role constants
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Request types

type CreateDrawRequest struct {
	PrizeName       string    `json:"prizeName"`
	Description     string    `json:"description"`
	DrawDate        time.Time `json:"drawDate"`
	MaxParticipants *int      `json:"maxParticipants,omitempty"`
	EntryFee        *float64  `json:"entryFee,omitempty"`
	Status          string    `json:"status,omitempty"`
}

type TransitionDrawRequest struct {
	Status string `json:"status"`
}

// UpdateDrawRequest edits a non-terminal draw. Nil fields keep their
// current value.
type UpdateDrawRequest struct {
	PrizeName       *string    `json:"prizeName,omitempty"`
	Description     *string    `json:"description,omitempty"`
	DrawDate        *time.Time `json:"drawDate,omitempty"`
	MaxParticipants *int       `json:"maxParticipants,omitempty"`
	EntryFee        *float64   `json:"entryFee,omitempty"`
	Status          *string    `json:"status,omitempty"`
}

type JoinDrawRequest struct {
	PhoneNumber        string `json:"phoneNumber"`
	AccountNumber      string `json:"accountNumber"`
	BankName           string `json:"bankName"`
	ParticipationNotes string `json:"participationNotes,omitempty"`
}

type DrawWinnersRequest struct {
	Count int `json:"count"`
}

type AddParticipantByEmailRequest struct {
	Email              string `json:"email"`
	PhoneNumber        string `json:"phoneNumber"`
	AccountNumber      string `json:"accountNumber"`
	BankName           string `json:"bankName"`
	ParticipationNotes string `json:"participationNotes,omitempty"`
}

type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// Envelope is the JSON wrapper used by every endpoint. The existing front
// end reads { success, data, message }.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// Domain types

type Draw struct {
	ID               string    `json:"id"`
	PrizeName        string    `json:"prizeName"`
	Description      string    `json:"description,omitempty"`
	DrawDate         time.Time `json:"drawDate"`
	MaxParticipants  *int      `json:"maxParticipants,omitempty"`
	EntryFee         *float64  `json:"entryFee,omitempty"`
	Status           string    `json:"status"`
	ParticipantCount int       `json:"participantCount"`
	CreatedBy        string    `json:"createdBy,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Participation is one user's entry in one draw. IsWinner is tri-state:
// nil until the draw is finalized, then exactly true or false forever.
type Participation struct {
	ID                 string    `json:"id"`
	DrawID             string    `json:"drawId"`
	UserID             string    `json:"userId"`
	ReferenceNumber    string    `json:"referenceNumber"`
	PhoneNumber        string    `json:"phoneNumber"`
	AccountNumber      string    `json:"accountNumber"`
	BankName           string    `json:"bankName"`
	ParticipationNotes string    `json:"participationNotes,omitempty"`
	IsWinner           *bool     `json:"isWinner"`
	CreatedAt          time.Time `json:"createdAt"`
}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// DrawFilter narrows ListDraws results. Zero fields match everything.
type DrawFilter struct {
	Status    string
	CreatedBy string
}
