package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/imkarma/pulse/internal/cli"
)

func main() {
	// Optional .env overlay, e.g. PULSE_DATA pointing at the export.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
