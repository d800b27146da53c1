package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestIssueAndParse(t *testing.T) {
	a := NewAuthService("test-secret")
	tok, err := a.IssueJWT("alice", "admin")
	if err != nil {
		t.Fatal(err)
	}
	claims, err := a.Parse(tok)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Sub != "alice" || claims.Role != "admin" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestParseRejectsForeignToken(t *testing.T) {
	a := NewAuthService("secret-a")
	b := NewAuthService("secret-b")
	tok, _ := a.IssueJWT("alice", "admin")
	if _, err := b.Parse(tok); err == nil {
		t.Fatal("expected parse failure for a token signed with another key")
	}
}

func TestLoginHandler(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	a := NewAuthService("test-secret")
	h := LoginHandler(a, []Credential{{Username: "admin", PassHash: string(hash), Role: "admin"}})

	login := func(user, pass string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(map[string]string{"username": user, "password": pass})
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
		w := httptest.NewRecorder()
		h(w, req)
		return w
	}

	if w := login("admin", "hunter2"); w.Code != http.StatusOK {
		t.Fatalf("valid login status = %d", w.Code)
	} else {
		var out struct {
			AccessToken string `json:"access_token"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil || out.AccessToken == "" {
			t.Fatalf("no token in response: %s", w.Body.String())
		}
	}
	if w := login("admin", "wrong"); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad password status = %d", w.Code)
	}
	if w := login("nobody", "hunter2"); w.Code != http.StatusUnauthorized {
		t.Fatalf("unknown user status = %d", w.Code)
	}
}
