package store

import (
	"context"
	"testing"
	"time"

	"pustaka/internal/db"
)

func TestRevokeToken(t *testing.T) {
	ctx := context.Background()
	database := db.NewTestDB(t)

	revoked, err := IsTokenRevoked(ctx, database, "jti-1")
	if err != nil {
		t.Fatalf("checking token: %v", err)
	}
	if revoked {
		t.Error("unknown token reported as revoked")
	}

	if err := RevokeToken(ctx, database, "jti-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("revoking token: %v", err)
	}

	revoked, err = IsTokenRevoked(ctx, database, "jti-1")
	if err != nil {
		t.Fatalf("checking token: %v", err)
	}
	if !revoked {
		t.Error("revoked token reported as valid")
	}

	// Revoking twice is a no-op.
	if err := RevokeToken(ctx, database, "jti-1", time.Now().Add(time.Hour)); err != nil {
		t.Errorf("re-revoking token: %v", err)
	}
}

func TestGetJWTSecret(t *testing.T) {
	ctx := context.Background()
	database := db.NewTestDB(t)

	secret, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatalf("getting secret: %v", err)
	}
	if secret == "" {
		t.Fatal("secret is empty")
	}

	// Stable across calls.
	again, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatalf("getting secret again: %v", err)
	}
	if again != secret {
		t.Errorf("secret changed between calls: %q != %q", again, secret)
	}
}
