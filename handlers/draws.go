// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/lucky-draw/cliparse"
	"github.com/danielhkuo/lucky-draw/draws"
	"github.com/danielhkuo/lucky-draw/middleware"
	"github.com/danielhkuo/lucky-draw/models"
)

// DrawHandler serves draw lifecycle endpoints.
type DrawHandler struct {
	svc    *draws.Service
	config cliparse.Config
}

func NewDrawHandler(svc *draws.Service, config cliparse.Config) *DrawHandler {
	return &DrawHandler{svc: svc, config: config}
}

// CreateDraw handles POST /admin/draws
func (h *DrawHandler) CreateDraw(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireAdmin(w, r)
	if !ok {
		return
	}

	var req models.CreateDrawRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	draw, err := h.svc.CreateDraw(r.Context(), req, identity.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	slog.Info("Draw created", "drawId", draw.ID, "prize", draw.PrizeName, "createdBy", identity.UserID)
	middleware.JSONResponse(w, http.StatusCreated, draw, "Draw created successfully")
}

// TransitionDraw handles POST /admin/draws/{id}/status
func (h *DrawHandler) TransitionDraw(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	drawID := r.PathValue("id")

	var req models.TransitionDrawRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	// Completion happens through winner selection, never by direct request.
	if req.Status == models.StatusCompleted {
		middleware.ErrorResponse(w, http.StatusConflict, "Draws are completed by drawing winners")
		return
	}

	draw, err := h.svc.Transition(r.Context(), drawID, req.Status)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	slog.Info("Draw status changed", "drawId", drawID, "status", draw.Status)
	middleware.JSONResponse(w, http.StatusOK, draw, "Draw status updated")
}

// UpdateDraw handles PUT /api/draws/{id}
func (h *DrawHandler) UpdateDraw(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	drawID := r.PathValue("id")

	var req models.UpdateDrawRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	// Completion happens through winner selection, never by direct request.
	if req.Status != nil && *req.Status == models.StatusCompleted {
		middleware.ErrorResponse(w, http.StatusConflict, "Draws are completed by drawing winners")
		return
	}

	draw, err := h.svc.UpdateDraw(r.Context(), drawID, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	slog.Info("Draw updated", "drawId", drawID, "status", draw.Status)
	middleware.JSONResponse(w, http.StatusOK, draw, "Draw updated successfully")
}

// ListDraws handles GET /draws
func (h *DrawHandler) ListDraws(w http.ResponseWriter, r *http.Request) {
	filter := models.DrawFilter{
		Status:    r.URL.Query().Get("status"),
		CreatedBy: r.URL.Query().Get("createdBy"),
	}

	list, err := h.svc.ListDraws(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, list, "")
}

// GetDraw handles GET /api/draws/{id}
func (h *DrawHandler) GetDraw(w http.ResponseWriter, r *http.Request) {
	draw, err := h.svc.GetDraw(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, draw, "")
}
