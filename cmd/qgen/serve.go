package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/kalambet/qgen/internal/api"
	"github.com/kalambet/qgen/internal/chat"
	"github.com/kalambet/qgen/internal/config"
	"github.com/kalambet/qgen/internal/generator"
	"github.com/kalambet/qgen/internal/inference"
	"github.com/kalambet/qgen/internal/logging"
	"github.com/kalambet/qgen/internal/metrics"
)

const shutdownTimeout = 5 * time.Second

var serveMCP bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (and optionally the MCP stdio server)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(serveMCP)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveMCP, "mcp", false, "also serve MCP over stdin/stdout")
}

// newService builds the generation service from cfg. Deps.Inferencer must
// stay an untyped nil when inference is disabled.
func newService(cfg config.Config, m *metrics.Metrics, logger *slog.Logger) *generator.Service {
	deps := generator.Deps{Metrics: m, Logger: logger}
	if cfg.Inference.Enabled {
		deps.Inferencer = newInferenceClient(cfg.Inference)
	}
	return generator.New(deps)
}

func newInferenceClient(c config.InferenceConfig) *inference.Client {
	return inference.New(inference.Options{
		BaseURL: c.BaseURL,
		Model:   c.Model,
		Token:   c.APIToken,
		Timeout: c.Timeout,
		Params: inference.Params{
			MaxNewTokens: c.MaxNewTokens,
			Temperature:  c.Temperature,
			DoSample:     true,
			TopK:         c.TopK,
			TopP:         c.TopP,
		},
	})
}

func newChatClient(c config.ChatConfig) api.ChatClient {
	if c.APIKey == "" {
		return nil
	}
	return chat.New(chat.Options{
		BaseURL: c.BaseURL,
		Model:   c.Model,
		APIKey:  c.APIKey,
		Timeout: c.Timeout,
	})
}

func runServer(withMCP bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// stdout belongs to the MCP transport when it is enabled.
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	slog.SetDefault(logger)

	m := metrics.New()
	svc := newService(cfg, m, logger)
	handler := api.NewHandler(api.Deps{
		Service: svc,
		Chat:    newChatClient(cfg.Chat),
		Metrics: m,
		Logger:  logger,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	printStep("qgen %s listening on http://%s", version, srv.Addr)
	printStatus("AI generation", "%s", enabledLabel(svc.AIEnabled()))
	printStatus("Chat endpoint", "%s", enabledLabel(cfg.Chat.APIKey != ""))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		logger.Info("server stopped")
		return nil
	})
	if withMCP {
		mcpSrv := api.NewMCPServer(api.MCPDeps{Service: svc, Version: version})
		g.Go(func() error {
			err := server.NewStdioServer(mcpSrv).Listen(gctx, os.Stdin, os.Stdout)
			if err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("mcp stdio: %w", err)
			}
			// stdin closed; take the HTTP server down with it.
			stop()
			return nil
		})
	}
	return g.Wait()
}

func enabledLabel(on bool) string {
	if on {
		return colorize(styleSuccess, "enabled")
	}
	return colorize(styleDim, "disabled")
}
