// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/lucky-draw/cliparse"
	"github.com/danielhkuo/lucky-draw/draws"
	"github.com/danielhkuo/lucky-draw/handlers"
	"github.com/danielhkuo/lucky-draw/middleware"
)

func NewRouter(svc *draws.Service, db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	drawHandler := handlers.NewDrawHandler(svc, cfg)
	participationHandler := handlers.NewParticipationHandler(svc, db, cfg)
	winnerHandler := handlers.NewWinnerHandler(svc, cfg)
	userHandler := handlers.NewUserHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Draw browsing (public)
	mux.HandleFunc("GET /draws", middleware.WithLogging(drawHandler.ListDraws))
	mux.HandleFunc("GET /api/draws/{id}", middleware.WithLogging(drawHandler.GetDraw))
	mux.HandleFunc("GET /draws/{id}/participants", middleware.WithLogging(participationHandler.ListParticipants))

	// Participation (signed-in users)
	mux.HandleFunc("POST /draws/{id}/join", middleware.WithLogging(participationHandler.JoinDraw))
	mux.HandleFunc("GET /my/participations", middleware.WithLogging(participationHandler.MyParticipations))

	// Draw management (admin operations; the edit form keeps the /api path)
	mux.HandleFunc("POST /admin/draws", middleware.WithLogging(drawHandler.CreateDraw))
	mux.HandleFunc("PUT /api/draws/{id}", middleware.WithLogging(drawHandler.UpdateDraw))
	mux.HandleFunc("POST /admin/draws/{id}/status", middleware.WithLogging(drawHandler.TransitionDraw))
	mux.HandleFunc("GET /admin/draws/{id}/participants", middleware.WithLogging(participationHandler.AdminListParticipants))
	mux.HandleFunc("POST /admin/draws/{id}/draw-winners", middleware.WithLogging(winnerHandler.DrawWinners))
	mux.HandleFunc("POST /admin/draws/{id}/add-participant-by-email", middleware.WithLogging(participationHandler.AddParticipantByEmail))

	// Account registry
	mux.HandleFunc("POST /api/users", middleware.WithLogging(userHandler.CreateUser))
	mux.HandleFunc("GET /api/users", middleware.WithLogging(userHandler.ListUsers))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("lucky-draw API v1"))
	})

	return mux
}
