// Command login-init authenticates against the finance API from the
// terminal and seeds the local session store, so the web UI starts
// already logged in. Useful for headless setups and development.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/lucasmsqt/notes-app/internal/api"
	"github.com/lucasmsqt/notes-app/internal/cli"
)

func main() {
	cli.LoadEnvFile()
	cli.SetupLogger()

	cfg := cli.LoadAndValidateConfig()

	email := os.Getenv("LOGIN_EMAIL")
	password := os.Getenv("LOGIN_PASSWORD")

	reader := bufio.NewReader(os.Stdin)
	if email == "" {
		fmt.Print("E-mail: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			slog.Error("Failed to read e-mail", "error", err)
			os.Exit(1)
		}
		email = strings.TrimSpace(line)
	}
	if password == "" {
		fmt.Print("Senha: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			slog.Error("Failed to read password", "error", err)
			os.Exit(1)
		}
		password = strings.TrimSpace(line)
	}

	store := cli.OpenSessionStore(cfg.SessionDBPath)
	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("Session store close error", "error", err)
		}
	}()

	client := api.New(cfg.APIBaseURL, store, cfg.APITimeout)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.APITimeout)
	defer cancel()

	creds, err := client.Login(ctx, email, password)
	if err != nil {
		slog.Error("Login failed", "error", err)
		os.Exit(1)
	}

	if err := store.SetCredentials(creds.Token, creds.UserID); err != nil {
		slog.Error("Failed to store credentials", "error", err)
		os.Exit(1)
	}

	slog.Info("Session stored", "user", creds.UserID, "path", cfg.SessionDBPath)
}
