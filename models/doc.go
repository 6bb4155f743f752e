// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateDrawRequest: prizeName, description, drawDate, maxParticipants, entryFee, status
  - TransitionDrawRequest: status
  - JoinDrawRequest: phoneNumber, accountNumber, bankName, participationNotes
  - DrawWinnersRequest: count
  - AddParticipantByEmailRequest: email plus join details
  - CreateUserRequest: name, email, role

# Response Shape

Every endpoint responds with the Envelope wrapper:

	{ "success": true, "data": ..., "message": "..." }

# Domain Types

  - Draw: raffle metadata and lifecycle state
  - Participation: one user's entry in one draw
  - User: directory entry (credentials live with the auth service)

# Constants

Status values:

	StatusUpcoming  = "upcoming"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"

Roles:

	RoleUser  = "user"
	RoleAdmin = "admin"
*/
package models
