package main

import (
	"os"

	"github.com/joho/godotenv"
)

// version is set via ldflags during build
var version = "dev"

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, "%v", err)
		os.Exit(1)
	}
}
