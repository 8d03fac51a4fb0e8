package tools

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/olgasafonova/whatsonchain-mcp-server/metrics"
	"github.com/olgasafonova/whatsonchain-mcp-server/tracing"
	"github.com/olgasafonova/whatsonchain-mcp-server/woc"
)

// HandlerRegistry provides type-safe tool registration by mapping
// tool names to their concrete handler implementations.
type HandlerRegistry struct {
	client *woc.Client
	logger *slog.Logger
}

// NewHandlerRegistry creates a new handler registry.
func NewHandlerRegistry(client *woc.Client, logger *slog.Logger) *HandlerRegistry {
	return &HandlerRegistry{
		client: client,
		logger: logger,
	}
}

// RegisterAll registers every tool the client's profile can serve.
func (h *HandlerRegistry) RegisterAll(server *mcp.Server) int {
	specs := ToolsForProfile(h.client.Config().Profile == woc.ProfileLegacy)
	registered := 0
	for _, spec := range specs {
		if h.registerByName(server, spec) {
			registered++
		}
	}
	h.logger.Info("Registered all tools",
		"count", registered,
		"network", h.client.Network().String(),
		"profile", string(h.client.Config().Profile))
	return registered
}

// registerByName dispatches to the correct typed registration function.
func (h *HandlerRegistry) registerByName(server *mcp.Server, spec ToolSpec) bool {
	tool := h.buildTool(spec)
	c := h.client

	switch spec.Method {
	// Chain
	case "Status":
		return h.register(server, tool, spec, c.StatusMCP)
	case "ChainInfo":
		return h.register(server, tool, spec, c.ChainInfoMCP)
	case "ChainTips":
		return h.register(server, tool, spec, c.ChainTipsMCP)
	case "MempoolInfo":
		return h.register(server, tool, spec, c.MempoolInfoMCP)
	case "Search":
		return h.register(server, tool, spec, c.SearchMCP)

	// Blocks
	case "GetBlock":
		return h.register(server, tool, spec, c.GetBlockMCP)
	case "BlockPage":
		return h.register(server, tool, spec, c.BlockPageMCP)
	case "BlockHeader":
		return h.register(server, tool, spec, c.BlockHeaderMCP)
	case "LatestHeaders":
		return h.register(server, tool, spec, c.LatestHeadersMCP)
	case "BlockStats":
		return h.register(server, tool, spec, c.BlockStatsMCP)

	// Transactions
	case "GetTx":
		return h.register(server, tool, spec, c.GetTxMCP)
	case "RawTx":
		return h.register(server, tool, spec, c.RawTxMCP)
	case "Broadcast":
		return h.register(server, tool, spec, c.BroadcastMCP)
	case "DecodeTx":
		return h.register(server, tool, spec, c.DecodeTxMCP)
	case "BulkTxStatus":
		return h.register(server, tool, spec, c.BulkTxStatusMCP)
	case "MerkleProof":
		return h.register(server, tool, spec, c.MerkleProofMCP)

	// Addresses
	case "AddressInfo":
		return h.register(server, tool, spec, c.AddressInfoMCP)
	case "Balance":
		return h.register(server, tool, spec, c.BalanceMCP)
	case "BulkBalance":
		return h.register(server, tool, spec, c.BulkBalanceMCP)
	case "History":
		return h.register(server, tool, spec, c.HistoryMCP)
	case "UTXOs":
		return h.register(server, tool, spec, c.UTXOsMCP)

	// Scripts
	case "ScriptHistory":
		return h.register(server, tool, spec, c.ScriptHistoryMCP)
	case "ScriptUTXOs":
		return h.register(server, tool, spec, c.ScriptUTXOsMCP)

	// Market and statistics
	case "ExchangeRate":
		return h.register(server, tool, spec, c.ExchangeRateMCP)
	case "HistoricalRate":
		return h.register(server, tool, spec, c.HistoricalRateMCP)
	case "MinerStats":
		return h.register(server, tool, spec, c.MinerStatsMCP)
	case "FeeQuotes":
		return h.register(server, tool, spec, c.FeeQuotesMCP)

	default:
		h.logger.Error("Unknown method, tool not registered", "method", spec.Method, "tool", spec.Name)
		return false
	}
}

// buildTool creates an mcp.Tool from a ToolSpec.
func (h *HandlerRegistry) buildTool(spec ToolSpec) *mcp.Tool {
	annotations := &mcp.ToolAnnotations{
		Title:          spec.Title,
		ReadOnlyHint:   spec.ReadOnly,
		IdempotentHint: spec.Idempotent,
	}
	if spec.Destructive {
		annotations.DestructiveHint = ptr(true)
	}
	if spec.OpenWorld {
		annotations.OpenWorldHint = ptr(true)
	}

	return &mcp.Tool{
		Name:        spec.Name,
		Description: spec.Description,
		Annotations: annotations,
	}
}

// register is a generic helper that registers a tool with the MCP server.
// It wraps the client method with panic recovery, metrics, tracing, and logging.
func register[Args, Result any](
	h *HandlerRegistry,
	server *mcp.Server,
	tool *mcp.Tool,
	spec ToolSpec,
	method func(context.Context, Args) (Result, error),
) {
	mcp.AddTool(server, tool, handler(h, spec, method))
}

// handler builds the wrapped tool function register installs.
func handler[Args, Result any](
	h *HandlerRegistry,
	spec ToolSpec,
	method func(context.Context, Args) (Result, error),
) mcp.ToolHandlerFor[Args, Result] {
	return func(ctx context.Context, req *mcp.CallToolRequest, args Args) (_ *mcp.CallToolResult, result Result, err error) {
		ctx, span := tracing.StartToolSpan(ctx, spec.Name, spec.Category, h.client.Network().String(), spec.ReadOnly)
		// runs after recoverPanic so a panic ends the span as an error
		defer func() { tracing.EndToolSpan(span, err) }()
		defer h.recoverPanic(spec.Name, &err)

		metrics.RequestInFlight.WithLabelValues(spec.Name).Inc()
		defer metrics.RequestInFlight.WithLabelValues(spec.Name).Dec()

		start := time.Now()
		result, err = method(ctx, args)
		duration := time.Since(start).Seconds()

		if err != nil {
			metrics.RecordRequest(spec.Name, duration, false)
			h.logger.Warn("Tool failed", "tool", spec.Name, "error", err)
			var zero Result
			return nil, zero, fmt.Errorf("%s failed: %w", spec.Name, err)
		}

		metrics.RecordRequest(spec.Name, duration, true)
		h.logExecution(spec, args, result)
		return nil, result, nil
	}
}

// recoverPanic recovers from panics in tool handlers and reports them as
// a tool error.
func (h *HandlerRegistry) recoverPanic(toolName string, errp *error) {
	if rec := recover(); rec != nil {
		metrics.PanicsRecovered.WithLabelValues(toolName).Inc()
		h.logger.Error("Panic recovered",
			"tool", toolName,
			"panic", rec,
			"stack", string(debug.Stack()))
		if errp != nil {
			*errp = fmt.Errorf("%s failed: internal error", toolName)
		}
	}
}

// logExecution logs tool execution details.
func (h *HandlerRegistry) logExecution(spec ToolSpec, args, result any) {
	attrs := []any{"tool", spec.Name, "network", h.client.Network().String()}

	switch a := args.(type) {
	case woc.GetBlockArgs:
		if a.Hash != "" {
			attrs = append(attrs, "hash", a.Hash)
		} else if a.Height != nil {
			attrs = append(attrs, "height", *a.Height)
		}
	case woc.BlockPageArgs:
		attrs = append(attrs, "hash", a.Hash, "page", a.Page)
	case woc.BlockHeaderArgs:
		attrs = append(attrs, "hash", a.Hash)
	case woc.BlockStatsArgs:
		attrs = append(attrs, "hash", a.Hash)
	case woc.GetTxArgs:
		attrs = append(attrs, "txid", a.TxID)
	case woc.RawTxArgs:
		attrs = append(attrs, "txid", a.TxID)
	case woc.MerkleProofArgs:
		attrs = append(attrs, "txid", a.TxID)
	case woc.BroadcastArgs:
		attrs = append(attrs, "tx_bytes", len(a.TxHex)/2)
	case woc.DecodeTxArgs:
		attrs = append(attrs, "tx_bytes", len(a.TxHex)/2)
	case woc.BulkTxStatusArgs:
		attrs = append(attrs, "txids", len(a.TxIDs))
	case woc.AddressArgs:
		attrs = append(attrs, "address", a.Address)
	case woc.BulkAddressArgs:
		attrs = append(attrs, "addresses", len(a.Addresses))
	case woc.HistoryArgs:
		attrs = append(attrs, "address", a.Address, "limit", a.Limit)
	case woc.ScriptArgs:
		attrs = append(attrs, "script_hash", a.ScriptHash)
	case woc.HistoricalRateArgs:
		attrs = append(attrs, "from", a.From, "to", a.To)
	case woc.SearchArgs:
		attrs = append(attrs, "query", a.Query)
	case woc.MinerStatsArgs:
		attrs = append(attrs, "days", a.Days, "summary", a.Summary)
	}

	switch r := result.(type) {
	case woc.StatusResult:
		attrs = append(attrs, "online", r.Online)
	case woc.ChainInfoResult:
		if r.Info != nil {
			attrs = append(attrs, "blocks", r.Info.Blocks)
		}
	case woc.ChainTipsResult:
		attrs = append(attrs, "tips", r.Count)
	case woc.BlockPageResult:
		attrs = append(attrs, "txids", r.Count)
	case woc.LatestHeadersResult:
		attrs = append(attrs, "headers", r.Count)
	case woc.RawTxResult:
		attrs = append(attrs, "bytes", r.Bytes)
	case woc.BroadcastResult:
		attrs = append(attrs, "txid", r.TxID)
	case woc.BulkTxStatusResult:
		attrs = append(attrs, "statuses", len(r.Statuses))
	case woc.BalanceResult:
		attrs = append(attrs, "total_bsv", r.TotalBSV)
	case woc.BulkBalanceResult:
		attrs = append(attrs, "balances", len(r.Balances))
	case woc.HistoryResult:
		attrs = append(attrs, "returned", len(r.Transactions), "total", r.Total, "truncated", r.Truncated)
	case woc.UTXOsResult:
		attrs = append(attrs, "utxos", r.Count, "total_sats", r.TotalSats)
	case woc.HistoricalRateResult:
		attrs = append(attrs, "rates", r.Count)
	case woc.SearchResult:
		attrs = append(attrs, "results", r.Count)
	}

	h.logger.Info("Tool executed", attrs...)
}

// Convenience function to call the generic register with method receiver
func (h *HandlerRegistry) register(server *mcp.Server, tool *mcp.Tool, spec ToolSpec, method any) bool {
	switch m := method.(type) {
	case func(context.Context, woc.StatusArgs) (woc.StatusResult, error):
		register(h, server, tool, spec, m)
	case func(context.Context, woc.ChainInfoArgs) (woc.ChainInfoResult, error):
		register(h, server, tool, spec, m)
	case func(context.Context, woc.ChainTipsArgs) (woc.ChainTipsResult, error):
		register(h, server, tool, spec, m)
	case func(context.Context, woc.MempoolInfoArgs) (woc.MempoolInfoResult, error):
		register(h, server, tool, spec, m)
	case func(context.Context, woc.SearchArgs) (woc.SearchResult, error):
		register(h, server, tool, spec, m)

	case func(context.Context, woc.GetBlockArgs) (woc.GetBlockResult, error):
		register(h, server, tool, spec, m)
	case func(context.Context, woc.BlockPageArgs) (woc.BlockPageResult, error):
		register(h, server, tool, spec, m)
	case func(context.Context, woc.BlockHeaderArgs) (woc.BlockHeaderResult, error):
		register(h, server, tool, spec, m)
	case func(context.Context, woc.LatestHeadersArgs) (woc.LatestHeadersResult, error):
		register(h, server, tool, spec, m)
	case func(context.Context, woc.BlockStatsArgs) (woc.BlockStatsResult, error):
		register(h, server, tool, spec, m)

	case func(context.Context, woc.GetTxArgs) (woc.GetTxResult, error):
		register(h, server, tool, spec, m)
	case func(context.Context, woc.RawTxArgs) (woc.RawTxResult, error):
		register(h, server, tool, spec, m)
	case func(context.Context, woc.BroadcastArgs) (woc.BroadcastResult, error):
		register(h, server, tool, spec, m)
	case func(context.Context, woc.DecodeTxArgs) (woc.DecodeTxResult, error):
		register(h, server, tool, spec, m)
	case func(context.Context, woc.BulkTxStatusArgs) (woc.BulkTxStatusResult, error):
		register(h, server, tool, spec, m)
	case func(context.Context, woc.MerkleProofArgs) (woc.MerkleProofResult, error):
		register(h, server, tool, spec, m)

	case func(context.Context, woc.AddressArgs) (woc.AddressInfoResult, error):
		register(h, server, tool, spec, m)
	case func(context.Context, woc.AddressArgs) (woc.BalanceResult, error):
		register(h, server, tool, spec, m)
	case func(context.Context, woc.BulkAddressArgs) (woc.BulkBalanceResult, error):
		register(h, server, tool, spec, m)
	case func(context.Context, woc.HistoryArgs) (woc.HistoryResult, error):
		register(h, server, tool, spec, m)
	case func(context.Context, woc.AddressArgs) (woc.UTXOsResult, error):
		register(h, server, tool, spec, m)

	case func(context.Context, woc.ScriptArgs) (woc.HistoryResult, error):
		register(h, server, tool, spec, m)
	case func(context.Context, woc.ScriptArgs) (woc.UTXOsResult, error):
		register(h, server, tool, spec, m)

	case func(context.Context, woc.ExchangeRateArgs) (woc.ExchangeRateResult, error):
		register(h, server, tool, spec, m)
	case func(context.Context, woc.HistoricalRateArgs) (woc.HistoricalRateResult, error):
		register(h, server, tool, spec, m)
	case func(context.Context, woc.MinerStatsArgs) (woc.MinerStatsResult, error):
		register(h, server, tool, spec, m)
	case func(context.Context, woc.FeeQuotesArgs) (woc.FeeQuotesResult, error):
		register(h, server, tool, spec, m)

	default:
		h.logger.Error("Unknown method type, tool not registered", "tool", spec.Name)
		return false
	}
	return true
}
