package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/schooladmin/internal/cli"
)

func main() {
	// Unlike the server, existing environment variables win over .env.
	_ = godotenv.Load()

	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
