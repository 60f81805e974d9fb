package keyring

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/st/internal/constants"
	apperrors "github.com/julianstephens/st/internal/errors"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
	// ErrUnknownService is returned for names other than slack, github and asana
	ErrUnknownService = errors.New("unknown service")
)

// tokenEnv maps keyring user names to the environment variable checked first.
var tokenEnv = map[string]string{
	"slack":  constants.EnvSlackToken,
	"github": constants.EnvGitHubToken,
	"asana":  constants.EnvAsanaToken,
}

// Services lists the names tokens can be stored under.
func Services() []string {
	return []string{"slack", "github", "asana"}
}

func normalize(service string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(service))
	if _, ok := tokenEnv[s]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownService, service)
	}
	return s, nil
}

// Token resolves the API token for a service: environment variable first,
// then the OS keyring. A missing token is reported as "<ENV> not set".
func Token(service string) (string, error) {
	s, err := normalize(service)
	if err != nil {
		return "", err
	}
	env := tokenEnv[s]
	if v := os.Getenv(env); v != "" {
		return v, nil
	}
	tok, err := GetToken(s)
	if err == nil {
		return tok, nil
	}
	return "", fmt.Errorf("%s not set: %w", env, apperrors.ErrMissingCredential)
}

// GetToken retrieves a service token from the OS keyring.
// Returns ErrNotFound if no credentials are stored.
func GetToken(service string) (string, error) {
	s, err := normalize(service)
	if err != nil {
		return "", err
	}
	tok, err := keyring.Get(constants.AppName, s)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		// Wrap other keyring errors as unavailable
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return tok, nil
}

// SetToken stores a service token in the OS keyring.
func SetToken(service, token string) error {
	s, err := normalize(service)
	if err != nil {
		return err
	}
	if strings.TrimSpace(token) == "" {
		return errors.New("token cannot be empty")
	}
	if err := keyring.Set(constants.AppName, s, token); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// DeleteToken removes a service token from the OS keyring.
func DeleteToken(service string) error {
	s, err := normalize(service)
	if err != nil {
		return err
	}
	if err := keyring.Delete(constants.AppName, s); err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	// If the error is ErrNotFound, the keyring is available but empty
	return err == nil || err == keyring.ErrNotFound
}

// Source reports where a service token would be read from: "env", "keyring", or "" when missing.
func Source(service string) string {
	s, err := normalize(service)
	if err != nil {
		return ""
	}
	if os.Getenv(tokenEnv[s]) != "" {
		return "env"
	}
	if _, err := GetToken(s); err == nil {
		return "keyring"
	}
	return ""
}

// EnvVar returns the environment variable checked for a service token.
func EnvVar(service string) string {
	s, err := normalize(service)
	if err != nil {
		return ""
	}
	return tokenEnv[s]
}
