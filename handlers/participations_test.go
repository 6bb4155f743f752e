// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/lucky-draw/models"
	"github.com/danielhkuo/lucky-draw/testutil"
)

func validJoinBody() models.JoinDrawRequest {
	return models.JoinDrawRequest{
		PhoneNumber:   "+923001234567",
		AccountNumber: "PK36SCBL0000001123456702",
		BankName:      "Standard Chartered",
	}
}

func TestJoinDraw(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewParticipationHandler(newTestService(db), db, cfg)

	cap2 := 2
	drawID := testutil.CreateTestDraw(t, db, models.StatusActive, time.Now().Add(48*time.Hour), &cap2)
	u1 := testutil.CreateTestUser(t, db, "Hina", "hina@example.com", models.RoleUser)
	u2 := testutil.CreateTestUser(t, db, "Imran", "imran@example.com", models.RoleUser)
	u3 := testutil.CreateTestUser(t, db, "Javed", "javed@example.com", models.RoleUser)

	join := func(userID string, body interface{}) *httptest.ResponseRecorder {
		var headers map[string]string
		if userID != "" {
			headers = testutil.UserHeaders(userID)
		}
		req := testutil.MakeRequest("POST", "/draws/"+drawID+"/join", body, headers)
		req.SetPathValue("id", drawID)
		w := httptest.NewRecorder()
		handler.JoinDraw(w, req)
		return w
	}

	t.Run("successful join", func(t *testing.T) {
		w := join(u1, validJoinBody())
		testutil.AssertStatus(t, w, http.StatusCreated)

		var p models.Participation
		success, _ := testutil.DecodeEnvelope(t, w, &p)
		if !success {
			t.Error("Expected success=true in envelope")
		}
		if !strings.HasPrefix(p.ReferenceNumber, "REF-") {
			t.Errorf("ReferenceNumber = %q, want REF- prefix", p.ReferenceNumber)
		}
		if p.IsWinner != nil {
			t.Error("IsWinner should be undecided at join time")
		}
	})

	t.Run("duplicate join", func(t *testing.T) {
		w := join(u1, validJoinBody())
		testutil.AssertStatus(t, w, http.StatusConflict)
	})

	t.Run("no identity", func(t *testing.T) {
		w := join("", validJoinBody())
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("missing payout details", func(t *testing.T) {
		body := validJoinBody()
		body.AccountNumber = ""
		w := join(u2, body)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("capacity reached", func(t *testing.T) {
		w := join(u2, validJoinBody())
		testutil.AssertStatus(t, w, http.StatusCreated)

		w = join(u3, validJoinBody())
		testutil.AssertStatus(t, w, http.StatusConflict)
	})
}

func TestJoinDrawLifecycleGates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewParticipationHandler(newTestService(db), db, cfg)
	userID := testutil.CreateTestUser(t, db, "Kiran", "kiran@example.com", models.RoleUser)

	tests := []struct {
		name     string
		status   string
		drawDate time.Time
	}{
		{"upcoming draw", models.StatusUpcoming, time.Now().Add(time.Hour)},
		{"completed draw", models.StatusCompleted, time.Now().Add(time.Hour)},
		{"cancelled draw", models.StatusCancelled, time.Now().Add(time.Hour)},
		{"elapsed draw date", models.StatusActive, time.Now().Add(-time.Minute)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drawID := testutil.CreateTestDraw(t, db, tt.status, tt.drawDate, nil)

			req := testutil.MakeRequest("POST", "/draws/"+drawID+"/join", validJoinBody(), testutil.UserHeaders(userID))
			req.SetPathValue("id", drawID)
			w := httptest.NewRecorder()

			handler.JoinDraw(w, req)

			testutil.AssertStatus(t, w, http.StatusConflict)
		})
	}
}

func TestListParticipants(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewParticipationHandler(newTestService(db), db, cfg)

	drawID := testutil.CreateTestDraw(t, db, models.StatusActive, time.Now().Add(time.Hour), nil)
	userID := testutil.CreateTestUser(t, db, "Laila", "laila@example.com", models.RoleUser)
	testutil.AddTestParticipation(t, db, drawID, userID)

	req := testutil.MakeRequest("GET", "/draws/"+drawID+"/participants", nil, nil)
	req.SetPathValue("id", drawID)
	w := httptest.NewRecorder()

	handler.ListParticipants(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	// Payout details must not appear on the public surface
	body := w.Body.String()
	for _, leaked := range []string{"accountNumber", "bankName", "phoneNumber", "userId"} {
		if strings.Contains(body, leaked) {
			t.Errorf("Public participant list leaks %q: %s", leaked, body)
		}
	}
	if !strings.Contains(body, "referenceNumber") {
		t.Error("Public participant list should include reference numbers")
	}
}

func TestAdminListParticipants(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewParticipationHandler(newTestService(db), db, cfg)
	adminID := testutil.CreateTestUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)

	drawID := testutil.CreateTestDraw(t, db, models.StatusActive, time.Now().Add(time.Hour), nil)
	userID := testutil.CreateTestUser(t, db, "Maya", "maya@example.com", models.RoleUser)
	testutil.AddTestParticipation(t, db, drawID, userID)

	t.Run("admin sees full details", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/admin/draws/"+drawID+"/participants", nil, testutil.AdminHeaders(adminID))
		req.SetPathValue("id", drawID)
		w := httptest.NewRecorder()

		handler.AdminListParticipants(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var list []models.Participation
		testutil.DecodeEnvelope(t, w, &list)
		if len(list) != 1 {
			t.Fatalf("Expected 1 participant, got %d", len(list))
		}
		if list[0].AccountNumber == "" {
			t.Error("Admin listing should include payout details")
		}
		if list[0].UserID != userID {
			t.Errorf("UserID = %q, want %q", list[0].UserID, userID)
		}
	})

	t.Run("non-admin rejected", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/admin/draws/"+drawID+"/participants", nil, testutil.UserHeaders(userID))
		req.SetPathValue("id", drawID)
		w := httptest.NewRecorder()

		handler.AdminListParticipants(w, req)

		testutil.AssertStatus(t, w, http.StatusForbidden)
	})
}

func TestMyParticipations(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewParticipationHandler(newTestService(db), db, cfg)

	d1 := testutil.CreateTestDraw(t, db, models.StatusActive, time.Now().Add(time.Hour), nil)
	d2 := testutil.CreateTestDraw(t, db, models.StatusActive, time.Now().Add(time.Hour), nil)
	me := testutil.CreateTestUser(t, db, "Nadia", "nadia@example.com", models.RoleUser)
	other := testutil.CreateTestUser(t, db, "Omar", "omar@example.com", models.RoleUser)
	testutil.AddTestParticipation(t, db, d1, me)
	testutil.AddTestParticipation(t, db, d2, me)
	testutil.AddTestParticipation(t, db, d1, other)

	req := testutil.MakeRequest("GET", "/my/participations", nil, testutil.UserHeaders(me))
	w := httptest.NewRecorder()

	handler.MyParticipations(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var list []models.Participation
	testutil.DecodeEnvelope(t, w, &list)
	if len(list) != 2 {
		t.Fatalf("Expected 2 participations, got %d", len(list))
	}
	for _, p := range list {
		if p.UserID != me {
			t.Errorf("Listing includes another user's entry: %q", p.UserID)
		}
	}
}

func TestAddParticipantByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewParticipationHandler(newTestService(db), db, cfg)
	adminID := testutil.CreateTestUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)
	testutil.CreateTestUser(t, db, "Parveen", "parveen@example.com", models.RoleUser)

	drawID := testutil.CreateTestDraw(t, db, models.StatusActive, time.Now().Add(time.Hour), nil)

	makeBody := func(email string) models.AddParticipantByEmailRequest {
		return models.AddParticipantByEmailRequest{
			Email:         email,
			PhoneNumber:   "03001234567",
			AccountNumber: "ACC-9001",
			BankName:      "Meezan",
		}
	}

	tests := []struct {
		name           string
		body           interface{}
		headers        map[string]string
		expectedStatus int
	}{
		{"existing user added", makeBody("parveen@example.com"), testutil.AdminHeaders(adminID), http.StatusCreated},
		{"same user again", makeBody("parveen@example.com"), testutil.AdminHeaders(adminID), http.StatusConflict},
		{"unknown email", makeBody("ghost@example.com"), testutil.AdminHeaders(adminID), http.StatusNotFound},
		{"missing email", makeBody(""), testutil.AdminHeaders(adminID), http.StatusBadRequest},
		{"non-admin caller", makeBody("parveen@example.com"), testutil.UserHeaders("u1"), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/admin/draws/"+drawID+"/add-participant-by-email", tt.body, tt.headers)
			req.SetPathValue("id", drawID)
			w := httptest.NewRecorder()

			handler.AddParticipantByEmail(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}
}
