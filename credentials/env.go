package credentials

import (
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/tmm22/speechkit/util"
)

// Default environment variable names per provider tag.
var defaultEnvVars = map[string]string{
	"openai":            "OPENAI_API_KEY",
	"groq":              "GROQ_API_KEY",
	"mistral":           "MISTRAL_API_KEY",
	"deepgram":          "DEEPGRAM_API_KEY",
	"elevenlabs":        "ELEVENLABS_API_KEY",
	"sarvam":            "SARVAM_API_KEY",
	"gladia":            "GLADIA_API_KEY",
	"assemblyai":        "ASSEMBLYAI_API_KEY",
	"openai-compatible": "OPENAI_COMPATIBLE_API_KEY",
}

// EnvStore resolves provider secrets from environment variables. Unknown
// provider names fall back to "<PROVIDER>_API_KEY" with dashes mapped to
// underscores.
type EnvStore struct {
	overrides map[string]string
}

// NewEnvStore creates an EnvStore. The overrides map replaces the env var
// name used for specific providers.
func NewEnvStore(overrides map[string]string) *EnvStore {
	return &EnvStore{overrides: overrides}
}

// LoadDotenv loads a .env file into the process environment before
// lookups. A missing file is not an error.
func (e *EnvStore) LoadDotenv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return godotenv.Load(path)
}

// Get implements Store. Values are cleaned of surrounding quotes, which
// show up when keys are pasted into .env files.
func (e *EnvStore) Get(provider string) (string, bool) {
	v := util.SanitizeEnvValue(os.Getenv(e.EnvVar(provider)))
	return v, v != ""
}

// EnvVar returns the environment variable name consulted for a provider.
func (e *EnvStore) EnvVar(provider string) string {
	if e.overrides != nil {
		if name, ok := e.overrides[provider]; ok {
			return name
		}
	}
	if name, ok := defaultEnvVars[provider]; ok {
		return name
	}
	return strings.ToUpper(strings.ReplaceAll(provider, "-", "_")) + "_API_KEY"
}
