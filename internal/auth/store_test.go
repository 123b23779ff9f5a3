package auth

import "testing"

func TestMemoryStoreLookupByBothAliases(t *testing.T) {
	store := NewMemoryStore(Credential{
		Email:       "user@example.com",
		Username:    "user",
		Password:    "secret123",
		DisplayName: "ユーザー",
	})

	byEmail, ok := store.Lookup("user@example.com")
	if !ok {
		t.Fatal("expected lookup by email to hit")
	}
	byUsername, ok := store.Lookup("user")
	if !ok {
		t.Fatal("expected lookup by username to hit")
	}

	// どちらの別名でも同じアカウントに解決される
	if byEmail != byUsername {
		t.Fatalf("aliases resolved to different accounts: %+v vs %+v", byEmail, byUsername)
	}
}

func TestMemoryStoreLookupMiss(t *testing.T) {
	store := DemoStore()
	if _, ok := store.Lookup("nobody"); ok {
		t.Fatal("expected lookup miss for unknown identifier")
	}
	if _, ok := store.Lookup(""); ok {
		t.Fatal("expected lookup miss for empty identifier")
	}
}

func TestDemoStoreSeedsDemoAccount(t *testing.T) {
	store := DemoStore()
	cred, ok := store.Lookup("demo")
	if !ok {
		t.Fatal("expected demo account to exist")
	}
	if cred.Email != "demo@example.com" || cred.Username != "demo" {
		t.Fatalf("unexpected demo account: %+v", cred)
	}
}
