package postgres

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInviteTokenExpired(t *testing.T) {
	live := InviteToken{ExpiresAt: time.Now().Add(time.Hour)}
	assert.False(t, live.Expired())

	dead := InviteToken{ExpiresAt: time.Now().Add(-time.Minute)}
	assert.True(t, dead.Expired())
}

func TestInviteTokenExhausted(t *testing.T) {
	tests := []struct {
		name     string
		maxUses  int
		useCount int
		want     bool
	}{
		{"fresh capped token", 10, 0, false},
		{"one use left", 10, 9, false},
		{"at the cap", 10, 10, true},
		{"over the cap", 10, 11, true},
		{"uncapped token never exhausts", 0, 5000, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := InviteToken{MaxUses: tt.maxUses, UseCount: tt.useCount}
			assert.Equal(t, tt.want, tok.Exhausted())
		})
	}
}

func TestGenerateTokenShape(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		tok := generateToken(tokenLength)
		assert.Len(t, tok, tokenLength)
		for _, r := range tok {
			assert.True(t, strings.ContainsRune(tokenCharset, r), "unexpected rune %q", r)
		}
		seen[tok] = true
	}
	assert.Greater(t, len(seen), 90, "tokens should not collide in practice")
}
