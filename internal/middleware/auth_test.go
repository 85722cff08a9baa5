package middleware

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/crucial707/expense-tracker/internal/auth"
	"github.com/crucial707/expense-tracker/internal/repo"
)

func testTokens() *auth.TokenService {
	return auth.NewTokenService(auth.TokenConfig{
		AccessSecret:  "access-test-secret",
		RefreshSecret: "refresh-test-secret",
		AccessTTL:     30 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	})
}

func protectedEcho(t *testing.T, users *repo.UserRepo, tokens *auth.TokenService) http.Handler {
	t.Helper()
	return Authenticate(tokens, users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := CurrentUser(r.Context())
		if !ok {
			t.Error("handler reached without user in context")
			return
		}
		w.Write([]byte(user.Username))
	}))
}

func TestAuthenticate_ValidToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, username, password_hash`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash"}).
			AddRow(1, "alice", "hash"))

	tokens := testTokens()
	token, err := tokens.IssueAccess("alice", time.Now())
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	req := httptest.NewRequest("GET", "/expenses", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	protectedEcho(t, repo.NewUserRepo(db), tokens).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK || rr.Body.String() != "alice" {
		t.Errorf("got %d %q, want 200 %q", rr.Code, rr.Body.String(), "alice")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAuthenticate_Rejections(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	tokens := testTokens()
	handler := protectedEcho(t, repo.NewUserRepo(db), tokens)

	expired, err := tokens.IssueAccess("alice", time.Now().Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	refresh, err := tokens.IssueRefresh("alice", time.Now())
	if err != nil {
		t.Fatalf("IssueRefresh: %v", err)
	}

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no bearer prefix", "Token abc"},
		{"garbage token", "Bearer garbage"},
		{"expired token", "Bearer " + expired},
		{"refresh token as access", "Bearer " + refresh},
	}

	for _, tc := range cases {
		req := httptest.NewRequest("GET", "/expenses", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("%s: status got %d, want 401", tc.name, rr.Code)
		}
		if got := rr.Header().Get("WWW-Authenticate"); got != "Bearer" {
			t.Errorf("%s: WWW-Authenticate got %q, want %q", tc.name, got, "Bearer")
		}
	}
}

func TestAuthenticate_DeletedSubject(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// Token is valid but its subject is gone; same 401 as a bad token.
	mock.ExpectQuery(`SELECT id, username, password_hash`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	tokens := testTokens()
	token, err := tokens.IssueAccess("ghost", time.Now())
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	req := httptest.NewRequest("GET", "/expenses", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	protectedEcho(t, repo.NewUserRepo(db), tokens).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status got %d, want 401", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
