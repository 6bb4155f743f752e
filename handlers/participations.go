// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/lucky-draw/cliparse"
	"github.com/danielhkuo/lucky-draw/draws"
	"github.com/danielhkuo/lucky-draw/middleware"
	"github.com/danielhkuo/lucky-draw/models"
)

// ParticipationHandler serves joining and ledger-listing endpoints.
type ParticipationHandler struct {
	svc    *draws.Service
	db     *sql.DB
	config cliparse.Config
}

func NewParticipationHandler(svc *draws.Service, db *sql.DB, config cliparse.Config) *ParticipationHandler {
	return &ParticipationHandler{svc: svc, db: db, config: config}
}

// participantView is the redacted shape returned to non-admin callers.
// Payout details never leave the admin surface.
type participantView struct {
	ID              string    `json:"id"`
	ReferenceNumber string    `json:"referenceNumber"`
	IsWinner        *bool     `json:"isWinner"`
	CreatedAt       time.Time `json:"createdAt"`
}

// JoinDraw handles POST /draws/{id}/join
func (h *ParticipationHandler) JoinDraw(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	drawID := r.PathValue("id")

	var req models.JoinDrawRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	participation, err := h.svc.Join(r.Context(), drawID, identity.UserID, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, participation, "Joined draw successfully")
}

// ListParticipants handles GET /draws/{id}/participants
func (h *ParticipationHandler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListForDraw(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	views := make([]participantView, 0, len(list))
	for _, p := range list {
		views = append(views, participantView{
			ID:              p.ID,
			ReferenceNumber: p.ReferenceNumber,
			IsWinner:        p.IsWinner,
			CreatedAt:       p.CreatedAt,
		})
	}

	middleware.JSONResponse(w, http.StatusOK, views, "")
}

// AdminListParticipants handles GET /admin/draws/{id}/participants
func (h *ParticipationHandler) AdminListParticipants(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	list, err := h.svc.ListForDraw(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, list, "")
}

// MyParticipations handles GET /my/participations
func (h *ParticipationHandler) MyParticipations(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	list, err := h.svc.ListForUser(r.Context(), identity.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, list, "")
}

// AddParticipantByEmail handles POST /admin/draws/{id}/add-participant-by-email
//
// Walk-in entrants get registered by an admin on their behalf. The target
// user must already exist; the entry passes through the same eligibility
// checks as a self-service join.
func (h *ParticipationHandler) AddParticipantByEmail(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireAdmin(w, r)
	if !ok {
		return
	}

	drawID := r.PathValue("id")

	var req models.AddParticipantByEmailRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Email == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email is required")
		return
	}

	user, err := lookupUserByEmail(r.Context(), h.db, h.config, req.Email)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "No user with that email")
		return
	}
	if err != nil {
		slog.Error("User lookup failed", "email", req.Email, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	details := models.JoinDrawRequest{
		PhoneNumber:        req.PhoneNumber,
		AccountNumber:      req.AccountNumber,
		BankName:           req.BankName,
		ParticipationNotes: req.ParticipationNotes,
	}

	participation, err := h.svc.Join(r.Context(), drawID, user.ID, details)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	slog.Info("Participant added by admin",
		"drawId", drawID, "userId", user.ID, "admin", identity.UserID)
	middleware.JSONResponse(w, http.StatusCreated, participation, "Participant added successfully")
}
