// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/danielhkuo/lucky-draw/auth"
	"github.com/danielhkuo/lucky-draw/cliparse"
	"github.com/danielhkuo/lucky-draw/middleware"
	"github.com/danielhkuo/lucky-draw/models"
)

// UserHandler serves account registry endpoints.
type UserHandler struct {
	db     *sql.DB
	config cliparse.Config
}

func NewUserHandler(db *sql.DB, config cliparse.Config) *UserHandler {
	return &UserHandler{db: db, config: config}
}

// CreateUser handles POST /api/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		middleware.ErrorResponse(w, http.StatusBadRequest, "a valid email is required")
		return
	}
	if req.Role == "" {
		req.Role = models.RoleUser
	}
	if req.Role != models.RoleUser && req.Role != models.RoleAdmin {
		middleware.ErrorResponse(w, http.StatusBadRequest, "role must be user or admin")
		return
	}

	id, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("Failed to generate user ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.QueryTimeout())
	defer cancel()

	now := time.Now()
	_, err = h.db.ExecContext(ctx, `
		INSERT INTO app_user (id, name, email, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, id, req.Name, req.Email, req.Role, now)
	if err != nil {
		if isEmailTaken(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "Email already registered")
			return
		}
		slog.Error("Failed to create user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	user := models.User{ID: id, Name: req.Name, Email: req.Email, Role: req.Role, CreatedAt: now}
	slog.Info("User created", "userId", id, "role", req.Role)
	middleware.JSONResponse(w, http.StatusCreated, user, "User created successfully")
}

// ListUsers handles GET /api/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.QueryTimeout())
	defer cancel()

	query := `SELECT id, name, email, role, created_at FROM app_user`
	args := []any{}
	if role := r.URL.Query().Get("role"); role != "" {
		query += ` WHERE role = $1`
		args = append(args, role)
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Error("Failed to list users", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt); err != nil {
			slog.Error("Failed to scan user", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		slog.Error("Failed to read users", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, users, "")
}

// lookupUserByEmail fetches a user row by email. Returns sql.ErrNoRows
// when no account matches.
func lookupUserByEmail(ctx context.Context, db *sql.DB, config cliparse.Config, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, config.QueryTimeout())
	defer cancel()

	var u models.User
	err := db.QueryRowContext(ctx, `
		SELECT id, name, email, role, created_at FROM app_user WHERE email = $1
	`, strings.ToLower(strings.TrimSpace(email))).Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// isEmailTaken reports whether err is the unique-email constraint firing.
// Postgres reports class 23505; the sqlite driver only gives us a message.
func isEmailTaken(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
