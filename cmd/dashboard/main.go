package main

import (
	"context"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"nexttodo/internal/dashboard/tui"
)

func main() {
	baseURL := os.Getenv("NEXTTODO_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	err := tui.Run(context.Background(), baseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "dashboard:", err)
		os.Exit(1)
	}
}
