package session

import (
	"testing"
	"time"

	"github.com/serragrande/logsgb/internal/models"
)

func TestIssueAndResolve(t *testing.T) {
	m := NewManager(time.Hour)

	token := m.Issue(models.Session{Username: "joao", Status: models.StatusApproved})
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	sess, ok := m.Resolve(token)
	if !ok {
		t.Fatal("expected token to resolve")
	}
	if sess.Username != "joao" {
		t.Errorf("username = %q; want joao", sess.Username)
	}
}

func TestResolve_UnknownToken(t *testing.T) {
	m := NewManager(time.Hour)

	if _, ok := m.Resolve("nope"); ok {
		t.Error("unknown token resolved")
	}
}

func TestResolve_IdleExpiry(t *testing.T) {
	m := NewManager(time.Minute)
	current := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return current }

	token := m.Issue(models.Session{Username: "joao"})

	// Activity inside the TTL refreshes the timer.
	current = current.Add(50 * time.Second)
	if _, ok := m.Resolve(token); !ok {
		t.Fatal("token expired inside TTL")
	}

	current = current.Add(50 * time.Second)
	if _, ok := m.Resolve(token); !ok {
		t.Fatal("refreshed token expired inside TTL")
	}

	current = current.Add(2 * time.Minute)
	if _, ok := m.Resolve(token); ok {
		t.Error("idle token did not expire")
	}
}

func TestRevoke(t *testing.T) {
	m := NewManager(time.Hour)

	token := m.Issue(models.Session{Username: "joao"})
	m.Revoke(token)

	if _, ok := m.Resolve(token); ok {
		t.Error("revoked token resolved")
	}
}
