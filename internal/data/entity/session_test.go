package entity

import (
	"testing"
	"time"
)

func TestSessionActive(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	revoked := now.Add(-time.Minute)

	tests := []struct {
		name string
		s    Session
		want bool
	}{
		{"live", Session{ExpiresAt: now.Add(time.Hour)}, true},
		{"expired", Session{ExpiresAt: now.Add(-time.Second)}, false},
		{"expires now", Session{ExpiresAt: now}, false},
		{"revoked", Session{ExpiresAt: now.Add(time.Hour), RevokedAt: &revoked}, false},
	}
	for _, tt := range tests {
		if got := tt.s.Active(now); got != tt.want {
			t.Errorf("%s: Active = %v, want %v", tt.name, got, tt.want)
		}
	}
}
