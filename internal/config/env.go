package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// CredentialError reports a missing provider credential. It is raised before
// any git or network operation is attempted.
type CredentialError struct {
	Provider string
	EnvVar   string
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("%s is not set in the environment or .env file (required for provider %q)",
		e.EnvVar, e.Provider)
}

// IsCredentialError checks whether err is (or wraps) a CredentialError.
func IsCredentialError(err error) bool {
	var ce *CredentialError
	return errors.As(err, &ce)
}

// credentialEnvVar maps a provider to the environment variable carrying its
// API key. Providers not listed need no credential.
func credentialEnvVar(provider string) string {
	switch provider {
	case "openai":
		return "OPENAI_API_KEY"
	case "anthropic":
		return "ANTHROPIC_API_KEY"
	case "ollama", "lmstudio":
		return "GITSCRIBE_OLLAMA_API_KEY"
	}
	return ""
}

// APIKey resolves the credential for a provider: process environment first,
// then a .env file in the working directory. For providers that run locally
// (ollama, lmstudio) the key is optional and an empty string is returned
// when unset; for remote providers a missing key is a CredentialError.
func APIKey(provider string) (string, error) {
	envVar := credentialEnvVar(provider)
	if envVar == "" {
		return "", nil
	}

	if key := strings.TrimSpace(os.Getenv(envVar)); key != "" {
		return key, nil
	}

	// godotenv.Read parses the file without mutating the process env.
	if vars, err := godotenv.Read(".env"); err == nil {
		if key := strings.TrimSpace(vars[envVar]); key != "" {
			return key, nil
		}
	}

	if provider == "ollama" || provider == "lmstudio" {
		return "", nil
	}
	return "", &CredentialError{Provider: provider, EnvVar: envVar}
}
