// WhatsOnChain MCP Server - A Model Context Protocol server for the BSV blockchain
// Provides tools for reading chain, block, transaction and address data from
// WhatsOnChain and for broadcasting transactions
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/olgasafonova/whatsonchain-mcp-server/internal/config"
	"github.com/olgasafonova/whatsonchain-mcp-server/internal/logging"
	"github.com/olgasafonova/whatsonchain-mcp-server/tools"
	"github.com/olgasafonova/whatsonchain-mcp-server/tracing"
	"github.com/olgasafonova/whatsonchain-mcp-server/woc"
)

// recoverPanic logs a recovered panic instead of crashing
func recoverPanic(logger *slog.Logger, operation string) {
	if r := recover(); r != nil {
		logger.Error("Panic recovered",
			"operation", operation,
			"panic", r,
			"stack", string(debug.Stack()))
	}
}

const (
	ServerName    = "whatsonchain-mcp-server"
	ServerVersion = "1.0.0"
)

const serverInstructions = `WhatsOnChain MCP Server provides read access to the BSV blockchain through the WhatsOnChain API, plus transaction broadcast.

Tool groups:
- Chain: woc_status, woc_chain_info, woc_chain_tips, woc_mempool_info, woc_search
- Blocks: woc_get_block, woc_block_page, woc_block_header, woc_latest_headers, woc_block_stats
- Transactions: woc_get_tx, woc_raw_tx, woc_decode_tx, woc_bulk_tx_status, woc_merkle_proof, woc_broadcast
- Addresses: woc_address_info, woc_balance, woc_bulk_balance, woc_history, woc_utxos
- Scripts: woc_script_history, woc_script_utxos
- Market: woc_exchange_rate, woc_historical_rate, woc_miner_stats

Amounts are reported in satoshis and in BSV (1 BSV = 100,000,000 satoshis).
Without WOC_API_KEY requests are limited to 3 per second.

Configure via environment variables:
- WOC_NETWORK: main, test or stn (default main)
- WOC_API_KEY: WhatsOnChain API key
- WOC_PROFILE: current or legacy endpoint profile`

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Logs go to stderr or a file; stdout is used for MCP protocol
	logger, closeLogs, err := logging.Setup(cfg.LoggingConfig())
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer func() { _ = closeLogs() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Server error", "error", err)
		stop()
		_ = closeLogs()
		os.Exit(1)
	}
	logger.Info("Server stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	clientCfg := cfg.ClientConfig()
	shutdownTracing, err := tracing.Setup(ctx, tracing.DefaultConfig(clientCfg.Network.String(), string(clientCfg.Profile)))
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Warn("Tracing shutdown failed", "error", err)
		}
	}()

	client := woc.NewWithConfig(clientCfg, woc.WithLogger(logger))
	defer client.Close()

	server := newServer(client, logger)

	logger.Info("Starting WhatsOnChain MCP Server",
		"name", ServerName,
		"version", ServerVersion,
		"network", client.Network().String(),
		"base_url", client.BaseURL(),
		"authenticated", cfg.APIKey != "",
		"cache", cfg.EnableCache,
	)

	if cfg.HTTPMode() {
		return serveHTTP(ctx, cfg, server, logger)
	}

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// newServer creates the MCP server and registers every tool the client serves
func newServer(client *woc.Client, logger *slog.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &mcp.ServerOptions{
		Instructions: serverInstructions,
	})

	tools.NewHandlerRegistry(client, logger).RegisterAll(server)
	return server
}

// newMux routes the MCP endpoint through the security middleware next to
// the unauthenticated health and metrics endpoints
func newMux(cfg *config.Config, server *mcp.Server, logger *slog.Logger) (*http.ServeMux, *SecurityMiddleware) {
	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)

	secured := NewSecurityMiddleware(mcpHandler, logger, SecurityConfig{
		RateLimit:   cfg.RateLimit,
		MaxBodySize: cfg.MaxBodySize,
		AuthToken:   cfg.AuthToken,
	})

	mux := http.NewServeMux()
	mux.Handle("/mcp", secured)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	return mux, secured
}

func serveHTTP(ctx context.Context, cfg *config.Config, server *mcp.Server, logger *slog.Logger) error {
	mux, secured := newMux(cfg, server, logger)
	defer secured.Close()

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		defer recoverPanic(logger, "http server")
		logger.Info("Listening for MCP over HTTP",
			"addr", cfg.HTTPAddr,
			"auth", cfg.AuthToken != "",
			"rate_limit_per_minute", cfg.RateLimit)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(sctx)
	}
}
