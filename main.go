package main

import (
	"os"
	"path/filepath"
	"strings"

	"fjacquet/csv-ofx/cmd/batch"
	"fjacquet/csv-ofx/cmd/convert"
	"fjacquet/csv-ofx/cmd/root"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func init() {
	// Load environment variables silently first; logging is configured from
	// them before any command runs.
	loadEnvSilently()
	applyLogLevelFromEnv()

	root.Init()
	root.Cmd.AddCommand(convert.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

// applyLogLevelFromEnv sets the shared logger's level from LOG_LEVEL so early
// messages already honor it.
func applyLogLevelFromEnv() {
	levelStr := strings.ToLower(os.Getenv("LOG_LEVEL"))
	if levelStr == "" {
		return
	}
	if level, err := logrus.ParseLevel(levelStr); err == nil {
		root.Log.SetLevel(level)
	}
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		root.Log.Error(err)
		os.Exit(1)
	}
}
