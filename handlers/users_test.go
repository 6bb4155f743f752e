// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/lucky-draw/models"
	"github.com/danielhkuo/lucky-draw/testutil"
)

func TestCreateUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewUserHandler(db, cfg)

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
	}{
		{
			name:           "valid user",
			body:           models.CreateUserRequest{Name: "Qasim", Email: "qasim@example.com"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "duplicate email",
			body:           models.CreateUserRequest{Name: "Qasim Again", Email: "qasim@example.com"},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "email case folded before uniqueness",
			body:           models.CreateUserRequest{Name: "Shouty", Email: "QASIM@EXAMPLE.COM"},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "admin role accepted",
			body:           models.CreateUserRequest{Name: "Rukhsana", Email: "rukhsana@example.com", Role: models.RoleAdmin},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing name",
			body:           models.CreateUserRequest{Email: "anon@example.com"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing email",
			body:           models.CreateUserRequest{Name: "No Email"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed email",
			body:           models.CreateUserRequest{Name: "Bad Email", Email: "not-an-email"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown role",
			body:           models.CreateUserRequest{Name: "Weird", Email: "weird@example.com", Role: "superuser"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			body:           "nope",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/users", tt.body, nil)
			w := httptest.NewRecorder()

			handler.CreateUser(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusCreated {
				var user models.User
				success, _ := testutil.DecodeEnvelope(t, w, &user)
				if !success {
					t.Error("Expected success=true in envelope")
				}
				if user.ID == "" {
					t.Error("Expected non-empty user ID")
				}
				if user.Role == "" {
					t.Error("Expected a role to be assigned")
				}
			}
		})
	}
}

func TestListUsers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewUserHandler(db, cfg)

	adminID := testutil.CreateTestUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)
	testutil.CreateTestUser(t, db, "Salma", "salma@example.com", models.RoleUser)
	testutil.CreateTestUser(t, db, "Tariq", "tariq@example.com", models.RoleUser)

	t.Run("admin lists all", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/api/users", nil, testutil.AdminHeaders(adminID))
		w := httptest.NewRecorder()

		handler.ListUsers(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var users []models.User
		testutil.DecodeEnvelope(t, w, &users)
		if len(users) != 3 {
			t.Errorf("Expected 3 users, got %d", len(users))
		}
	})

	t.Run("role filter", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/api/users?role=user", nil, testutil.AdminHeaders(adminID))
		w := httptest.NewRecorder()

		handler.ListUsers(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var users []models.User
		testutil.DecodeEnvelope(t, w, &users)
		if len(users) != 2 {
			t.Errorf("Expected 2 users with role=user, got %d", len(users))
		}
	})

	t.Run("non-admin rejected", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/api/users", nil, testutil.UserHeaders("someone"))
		w := httptest.NewRecorder()

		handler.ListUsers(w, req)

		testutil.AssertStatus(t, w, http.StatusForbidden)
	})
}
