package tokens

import (
	"strings"
	"testing"
)

var secret = []byte("test-secret")

func TestSignVerifyRoundTrip(t *testing.T) {
	claims := &Claims{
		UserID: "6617a1b2c3d4e5f601020304",
		Email:  "demo@finflock.app",
		Name:   "Finflock Demo",
	}

	token, err := Sign(claims, secret)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Fatalf("token %q is not three dot-separated segments", token)
	}

	got, err := Verify(token, secret)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got.UserID != claims.UserID || got.Email != claims.Email || got.Name != claims.Name {
		t.Errorf("claims round trip mismatch: got %+v", got)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := Sign(&Claims{UserID: "u1"}, secret)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if _, err := Verify(token, []byte("other-secret")); err == nil {
		t.Error("expected rejection with a different secret")
	}
}

func TestVerifyRejectsWrongSegmentCount(t *testing.T) {
	for _, tok := range []string{"", "abc", "a.b", "a.b.c.d"} {
		if _, err := Verify(tok, secret); err == nil {
			t.Errorf("expected rejection of %q", tok)
		}
	}
}

func TestVerifyRejectsMutatedToken(t *testing.T) {
	token, err := Sign(&Claims{UserID: "u1", Email: "a@b.c", Name: "A"}, secret)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	// Flip the leading character of each segment. The header and
	// payload flips break the signature; the signature flip no longer
	// matches the recomputed HMAC.
	parts := strings.Split(token, ".")
	for i, part := range parts {
		mutated := make([]string, 3)
		copy(mutated, parts)
		if part[0] == 'A' {
			mutated[i] = "B" + part[1:]
		} else {
			mutated[i] = "A" + part[1:]
		}
		if _, err := Verify(strings.Join(mutated, "."), secret); err == nil {
			t.Errorf("expected rejection after mutating segment %d", i)
		}
	}
}

func TestVerifyRejectsGarbagePayload(t *testing.T) {
	token, err := Sign(&Claims{UserID: "u1"}, secret)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	parts := strings.Split(token, ".")
	forged := parts[0] + ".bm90LWpzb24." + parts[2]
	if _, err := Verify(forged, secret); err == nil {
		t.Error("expected rejection of a non-JSON payload segment")
	}
}

func TestVerifyHasNoExpiry(t *testing.T) {
	token, err := Sign(&Claims{UserID: "u1"}, secret)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	got, err := Verify(token, secret)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got.ExpiresAt != nil {
		t.Error("tokens must not carry an expiry claim")
	}
}
