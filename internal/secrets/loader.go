// Package secrets resolves credentials from files, inline configuration or the OS keychain.
package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeyringService groups talentcrew secrets in the OS keychain.
const KeyringService = "talentcrew"

// Source describes where a secret may be found.
type Source struct {
	// Name is used in error messages to give more context about the secret.
	Name string
	// Value is an inline secret value provided via configuration or flags.
	Value string
	// File points to a file containing the secret value. When set it takes
	// precedence over Value.
	File string
	// Keyring is the account the secret is stored under in the OS keychain.
	// It is consulted only when neither File nor Value is set.
	Keyring string
}

// Load returns the trimmed secret from the first configured location: File, then
// Value, then the keychain. An error is returned when none of them holds a usable secret.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	if file := strings.TrimSpace(src.File); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		secret := strings.TrimSpace(string(data))
		if secret == "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}
		return secret, nil
	}

	if secret := strings.TrimSpace(src.Value); secret != "" {
		return secret, nil
	}

	if account := strings.TrimSpace(src.Keyring); account != "" {
		secret, err := keyring.Get(KeyringService, account)
		switch {
		case errors.Is(err, keyring.ErrNotFound):
			return "", fmt.Errorf("%s is not in the keychain under %q", name, account)
		case err != nil:
			return "", fmt.Errorf("reading %s from keychain: %w", name, err)
		}
		if secret = strings.TrimSpace(secret); secret != "" {
			return secret, nil
		}
	}

	return "", fmt.Errorf("%s is not configured", name)
}

// Store saves secret in the keychain under account.
func Store(account, secret string) error {
	account = strings.TrimSpace(account)
	if account == "" {
		return errors.New("keyring account name is empty")
	}
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return errors.New("secret is empty")
	}
	return keyring.Set(KeyringService, account, secret)
}

// Forget removes account from the keychain. A missing entry is not an error.
func Forget(account string) error {
	account = strings.TrimSpace(account)
	if account == "" {
		return errors.New("keyring account name is empty")
	}
	if err := keyring.Delete(KeyringService, account); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}
