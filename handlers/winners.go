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

// WinnerHandler serves the winner selection endpoint.
type WinnerHandler struct {
	svc    *draws.Service
	config cliparse.Config
}

func NewWinnerHandler(svc *draws.Service, config cliparse.Config) *WinnerHandler {
	return &WinnerHandler{svc: svc, config: config}
}

// DrawWinners handles POST /admin/draws/{id}/draw-winners
func (h *WinnerHandler) DrawWinners(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireAdmin(w, r)
	if !ok {
		return
	}

	drawID := r.PathValue("id")

	var req models.DrawWinnersRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Count == 0 {
		req.Count = 1
	}

	winners, err := h.svc.SelectWinners(r.Context(), drawID, req.Count)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	slog.Info("Winners drawn",
		"drawId", drawID, "requested", req.Count, "selected", len(winners), "admin", identity.UserID)
	middleware.JSONResponse(w, http.StatusOK, winners, "Winners selected")
}
