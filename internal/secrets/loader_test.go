package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zalando/go-keyring"
)

func writeSecret(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "secret")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing secret: %v", err)
	}
	return path
}

func TestLoadOrder(t *testing.T) {
	keyring.MockInit()
	if err := Store("gemini", "from-keyring"); err != nil {
		t.Fatalf("storing secret: %v", err)
	}

	tests := []struct {
		name string
		src  Source
		want string
	}{
		{
			name: "file wins",
			src:  Source{File: writeSecret(t, " from-file\n"), Value: "inline", Keyring: "gemini"},
			want: "from-file",
		},
		{
			name: "value before keyring",
			src:  Source{Value: "  inline ", Keyring: "gemini"},
			want: "inline",
		},
		{
			name: "keyring last",
			src:  Source{Keyring: "gemini"},
			want: "from-keyring",
		},
	}

	for _, tt := range tests {
		got, err := Load(tt.src)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tt.name, err)
		}
		if got != tt.want {
			t.Fatalf("%s: expected %q, got %q", tt.name, tt.want, got)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	keyring.MockInit()

	tests := []struct {
		name string
		src  Source
		want string
	}{
		{name: "nothing configured", src: Source{Name: "gemini api key"}, want: "gemini api key is not configured"},
		{name: "empty file", src: Source{File: writeSecret(t, "\n")}, want: "is empty"},
		{name: "missing file", src: Source{File: filepath.Join(t.TempDir(), "nope")}, want: "reading secret from file"},
		{name: "missing keyring entry", src: Source{Keyring: "absent"}, want: `not in the keychain under "absent"`},
	}

	for _, tt := range tests {
		_, err := Load(tt.src)
		if err == nil {
			t.Fatalf("%s: expected an error", tt.name)
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Fatalf("%s: expected error containing %q, got %q", tt.name, tt.want, err)
		}
	}
}

func TestStoreAndForget(t *testing.T) {
	keyring.MockInit()

	if err := Store(" ", "x"); err == nil {
		t.Fatal("expected an error for an empty account")
	}
	if err := Store("gemini", " "); err == nil {
		t.Fatal("expected an error for an empty secret")
	}

	if err := Store("gemini", "key"); err != nil {
		t.Fatal(err)
	}
	if err := Forget("gemini"); err != nil {
		t.Fatal(err)
	}
	if err := Forget("gemini"); err != nil {
		t.Fatalf("forgetting a missing entry should succeed: %v", err)
	}
	if _, err := Load(Source{Keyring: "gemini"}); err == nil {
		t.Fatal("expected the secret to be gone")
	}
}
