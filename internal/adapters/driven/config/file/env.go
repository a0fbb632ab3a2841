package file

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// LoadEnv loads API keys and other secrets from .env files into the
// process environment. The working directory's .env is tried first,
// then <configDir>/.env. Variables already set in the environment win,
// and missing files are not an error.
func LoadEnv(configDir string) {
	_ = godotenv.Load()

	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return
		}
		configDir = filepath.Join(home, ".policyscan")
	}
	_ = godotenv.Load(filepath.Join(configDir, ".env"))
}
