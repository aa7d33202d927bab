package cli

import (
	"strings"
	"testing"

	"gitlab.bluewillows.net/root/wedosapi/internal/credstore"
)

func TestAuthLogin(t *testing.T) {
	store := withMockStore(t)

	out, err := runCommand(t, strings.NewReader("wapi-password\n"),
		"auth", "login", "--user", "tester@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out, "Saved credentials for tester@example.com") {
		t.Errorf("unexpected output: %q", out)
	}

	creds, err := store.Load()
	if err != nil {
		t.Fatalf("loading stored credentials: %v", err)
	}
	if creds.User != "tester@example.com" || creds.Secret != "wapi-password" {
		t.Errorf("unexpected stored credentials: %+v", creds)
	}
}

func TestAuthLogin_PromptsForUser(t *testing.T) {
	store := withMockStore(t)

	in := strings.NewReader("tester@example.com\nwapi-password\n")
	out, err := runCommand(t, in, "auth", "login")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out, "WAPI user:") {
		t.Errorf("user prompt missing: %q", out)
	}

	creds, err := store.Load()
	if err != nil {
		t.Fatalf("loading stored credentials: %v", err)
	}
	if creds.User != "tester@example.com" {
		t.Errorf("unexpected stored user: %q", creds.User)
	}
}

func TestAuthLogin_EmptyUser(t *testing.T) {
	withMockStore(t)

	_, err := runCommand(t, strings.NewReader("\n\n"), "auth", "login")
	if err == nil || !strings.Contains(err.Error(), "user cannot be empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthLogin_EmptyPassword(t *testing.T) {
	withMockStore(t)

	_, err := runCommand(t, strings.NewReader("\n"),
		"auth", "login", "--user", "tester@example.com")
	if err == nil || !strings.Contains(err.Error(), "password cannot be empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthStatus_LoggedIn(t *testing.T) {
	t.Setenv(envUser, "")
	t.Setenv(envSecret, "")

	store := withMockStore(t)
	if err := store.Save(credstore.Credentials{User: "tester@example.com", Secret: "s"}); err != nil {
		t.Fatalf("seeding store: %v", err)
	}

	out, err := runCommand(t, nil, "auth", "status")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Logged in as tester@example.com") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestAuthStatus_NotLoggedIn(t *testing.T) {
	t.Setenv(envUser, "")
	t.Setenv(envSecret, "")
	withMockStore(t)

	out, err := runCommand(t, nil, "auth", "status")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Not logged in.") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestAuthStatus_EnvPrecedence(t *testing.T) {
	t.Setenv(envUser, "env@example.com")
	t.Setenv(envSecret, "env-secret")
	withMockStore(t)

	out, err := runCommand(t, nil, "auth", "status")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Environment credentials active for env@example.com") {
		t.Errorf("env notice missing: %q", out)
	}
	if !strings.Contains(out, "Not logged in.") {
		t.Errorf("keychain state missing: %q", out)
	}
}

func TestAuthLogout(t *testing.T) {
	store := withMockStore(t)
	if err := store.Save(credstore.Credentials{User: "tester@example.com", Secret: "s"}); err != nil {
		t.Fatalf("seeding store: %v", err)
	}

	out, err := runCommand(t, nil, "auth", "logout")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Removed stored credentials.") {
		t.Errorf("unexpected output: %q", out)
	}

	if _, err := store.Load(); err == nil {
		t.Error("expected credentials to be gone")
	}
}

func TestAuthLogout_NotLoggedIn(t *testing.T) {
	withMockStore(t)

	out, err := runCommand(t, nil, "auth", "logout")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Not logged in.") {
		t.Errorf("unexpected output: %q", out)
	}
}
