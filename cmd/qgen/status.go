package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/kalambet/qgen/internal/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server and configuration status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showStatus(cmd.Context())
	},
}

type healthResponse struct {
	Status      string `json:"status"`
	AIEnabled   bool   `json:"ai_enabled"`
	ChatEnabled bool   `json:"chat_enabled"`
}

func showStatus(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	store := config.DefaultStore()
	cfg, err := store.Load()
	if err != nil {
		// Still show partial status even if config fails.
		printError("config error: %v", err)
		return nil
	}

	client, err := newAPIClient()
	if err != nil {
		return err
	}
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	var health healthResponse
	resp, err := client.get(checkCtx, "/health")
	if err == nil {
		err = decodeJSON(resp, &health)
	}
	if err != nil {
		printStatus("Server", "stopped")
	} else {
		printStatus("Server", "%s on %s", health.Status, cfg.Server.Addr())
		printStatus("AI generation", "%s", enabledLabel(health.AIEnabled))
		printStatus("Chat endpoint", "%s", enabledLabel(health.ChatEnabled))
	}

	if cfg.Inference.Enabled {
		printStatus("Inference model", "%s", cfg.Inference.Model)
	} else {
		printStatus("Inference model", "%s", enabledLabel(false))
	}
	printStatus("Chat model", "%s", cfg.Chat.Model)

	paths := store.Paths()
	printStatus("Config file", "%s", paths.ConfigFile)
	printStatus("Secrets file", "%s", paths.SecretsFile)
	return nil
}
