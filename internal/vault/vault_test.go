package vault

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/VigyanSetu/WS-Frontend/internal/models"
)

func openTestVault(t *testing.T) (*Vault, string) {
	t.Helper()
	dir := t.TempDir()
	v, err := Open(filepath.Join(dir, "portal.db"), filepath.Join(dir, "portal.key"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return v, dir
}

func TestTokenRoundTrip(t *testing.T) {
	v, _ := openTestVault(t)

	if got := v.Token(); got != "" {
		t.Fatalf("fresh vault token = %q, want empty", got)
	}

	if err := v.SetToken("tok-1"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	if got := v.Token(); got != "tok-1" {
		t.Errorf("Token = %q", got)
	}

	// Overwrite keeps exactly one current token.
	if err := v.SetToken("tok-2"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	if got := v.Token(); got != "tok-2" {
		t.Errorf("Token after overwrite = %q", got)
	}
}

func TestTokenSealedAtRest(t *testing.T) {
	v, dir := openTestVault(t)

	const token = "very-secret-bearer-token"
	if err := v.SetToken(token); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "portal.db"))
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(raw, []byte(token)) {
		t.Error("token appears in plaintext inside the vault file")
	}
}

func TestClearTokenIsIdempotent(t *testing.T) {
	v, _ := openTestVault(t)

	if err := v.ClearToken(); err != nil {
		t.Fatalf("clearing an empty vault: %v", err)
	}

	if err := v.SetToken("tok-1"); err != nil {
		t.Fatal(err)
	}
	if err := v.ClearToken(); err != nil {
		t.Fatalf("ClearToken: %v", err)
	}
	if err := v.ClearToken(); err != nil {
		t.Fatalf("second ClearToken: %v", err)
	}
	if got := v.Token(); got != "" {
		t.Errorf("Token after clear = %q", got)
	}
}

func TestKeyPersistsAcrossOpens(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "portal.db")
	keyPath := filepath.Join(dir, "portal.key")

	v1, err := Open(dbPath, keyPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := v1.SetToken("tok-1"); err != nil {
		t.Fatal(err)
	}

	// A second open with the same key file must unseal the stored token.
	v2, err := Open(dbPath, keyPath)
	if err != nil {
		t.Fatal(err)
	}
	if got := v2.Token(); got != "tok-1" {
		t.Errorf("reopened vault token = %q, want tok-1", got)
	}
}

func TestWrongKeyReadsAsLoggedOut(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "portal.db")

	v1, err := Open(dbPath, filepath.Join(dir, "a.key"))
	if err != nil {
		t.Fatal(err)
	}
	if err := v1.SetToken("tok-1"); err != nil {
		t.Fatal(err)
	}

	// A different sealing key cannot unseal; the vault treats that as no
	// token rather than an error.
	v2, err := Open(dbPath, filepath.Join(dir, "b.key"))
	if err != nil {
		t.Fatal(err)
	}
	if got := v2.Token(); got != "" {
		t.Errorf("token under the wrong key = %q, want empty", got)
	}
}

func TestUserSnapshotRoundTrip(t *testing.T) {
	v, _ := openTestVault(t)

	if _, ok := v.CachedUser(); ok {
		t.Fatal("fresh vault reported a cached user")
	}

	user := models.User{ID: "u-1", Name: "Asha", Email: "asha@example.com", Role: models.RoleUser}
	if err := v.SaveUser(user); err != nil {
		t.Fatalf("SaveUser: %v", err)
	}

	got, ok := v.CachedUser()
	if !ok {
		t.Fatal("CachedUser: not found")
	}
	if got != user {
		t.Errorf("cached user = %+v, want %+v", got, user)
	}

	if err := v.ClearUser(); err != nil {
		t.Fatalf("ClearUser: %v", err)
	}
	if _, ok := v.CachedUser(); ok {
		t.Error("user survived ClearUser")
	}
}
