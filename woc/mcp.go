package woc

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	werrors "github.com/olgasafonova/whatsonchain-mcp-server/internal/errors"
)

// MCP Tool wrapper methods
// These methods validate Args, call the endpoint method and shape the Result.

// DefaultHistoryLimit caps history entries returned to a tool caller
const DefaultHistoryLimit = 100

// StatusMCP is the MCP wrapper for Status
func (c *Client) StatusMCP(ctx context.Context, _ StatusArgs) (StatusResult, error) {
	online, err := c.Status(ctx)
	if err != nil {
		return StatusResult{}, err
	}
	return StatusResult{Online: online, Network: c.Network().String()}, nil
}

// ChainInfoMCP is the MCP wrapper for ChainInfo
func (c *Client) ChainInfoMCP(ctx context.Context, _ ChainInfoArgs) (ChainInfoResult, error) {
	info, err := c.ChainInfo(ctx)
	if err != nil {
		return ChainInfoResult{}, err
	}
	return ChainInfoResult{Network: c.Network().String(), Info: info}, nil
}

// ChainTipsMCP is the MCP wrapper for ChainTips
func (c *Client) ChainTipsMCP(ctx context.Context, _ ChainTipsArgs) (ChainTipsResult, error) {
	tips, err := c.ChainTips(ctx)
	if err != nil {
		return ChainTipsResult{}, err
	}
	return ChainTipsResult{Tips: tips, Count: len(tips)}, nil
}

// GetBlockMCP is the MCP wrapper for BlockByHash and BlockByHeight
func (c *Client) GetBlockMCP(ctx context.Context, args GetBlockArgs) (GetBlockResult, error) {
	if err := validateArgs(args); err != nil {
		return GetBlockResult{}, err
	}
	if err := requireOneOf(args.Hash, args.Height); err != nil {
		return GetBlockResult{}, err
	}

	var (
		block *Block
		err   error
		id    string
	)
	if args.Hash != "" {
		id = args.Hash
		block, err = c.BlockByHash(ctx, args.Hash)
	} else {
		id = strconv.FormatInt(*args.Height, 10)
		block, err = c.BlockByHeight(ctx, *args.Height)
	}
	if err != nil {
		return GetBlockResult{}, c.notFound(err, "block", id)
	}

	if !args.IncludeTxs {
		block.Tx = nil
	}
	return GetBlockResult{Block: block}, nil
}

// BlockPageMCP is the MCP wrapper for BlockPage
func (c *Client) BlockPageMCP(ctx context.Context, args BlockPageArgs) (BlockPageResult, error) {
	if err := validateArgs(args); err != nil {
		return BlockPageResult{}, err
	}

	txids, err := c.BlockPage(ctx, args.Hash, args.Page)
	if err != nil {
		return BlockPageResult{}, c.notFound(err, "block page", args.Hash+"/"+strconv.Itoa(args.Page))
	}
	return BlockPageResult{Hash: args.Hash, Page: args.Page, TxIDs: txids, Count: len(txids)}, nil
}

// BlockHeaderMCP is the MCP wrapper for BlockHeaderByHash
func (c *Client) BlockHeaderMCP(ctx context.Context, args BlockHeaderArgs) (BlockHeaderResult, error) {
	if err := validateArgs(args); err != nil {
		return BlockHeaderResult{}, err
	}

	header, err := c.BlockHeaderByHash(ctx, args.Hash)
	if err != nil {
		return BlockHeaderResult{}, c.notFound(err, "block", args.Hash)
	}
	return BlockHeaderResult{Header: header}, nil
}

// LatestHeadersMCP is the MCP wrapper for BlockHeaders
func (c *Client) LatestHeadersMCP(ctx context.Context, _ LatestHeadersArgs) (LatestHeadersResult, error) {
	headers, err := c.BlockHeaders(ctx)
	if err != nil {
		return LatestHeadersResult{}, err
	}
	return LatestHeadersResult{Headers: headers, Count: len(headers)}, nil
}

// GetTxMCP is the MCP wrapper for TxByHash
func (c *Client) GetTxMCP(ctx context.Context, args GetTxArgs) (GetTxResult, error) {
	if err := validateArgs(args); err != nil {
		return GetTxResult{}, err
	}

	tx, err := c.TxByHash(ctx, args.TxID)
	if err != nil {
		return GetTxResult{}, c.notFound(err, "transaction", args.TxID)
	}
	if !args.IncludeHex {
		tx.Hex = ""
	}
	return GetTxResult{Tx: tx}, nil
}

// RawTxMCP is the MCP wrapper for RawTx and RawTxOutput
func (c *Client) RawTxMCP(ctx context.Context, args RawTxArgs) (RawTxResult, error) {
	if err := validateArgs(args); err != nil {
		return RawTxResult{}, err
	}

	var (
		txhex string
		err   error
	)
	if args.OutputIndex != nil {
		txhex, err = c.RawTxOutput(ctx, args.TxID, *args.OutputIndex)
	} else {
		txhex, err = c.RawTx(ctx, args.TxID)
	}
	if err != nil {
		return RawTxResult{}, c.notFound(err, "transaction", args.TxID)
	}
	return RawTxResult{
		TxID:        args.TxID,
		OutputIndex: args.OutputIndex,
		Hex:         txhex,
		Bytes:       len(txhex) / 2,
	}, nil
}

// BroadcastMCP is the MCP wrapper for Broadcast
func (c *Client) BroadcastMCP(ctx context.Context, args BroadcastArgs) (BroadcastResult, error) {
	if err := validateArgs(args); err != nil {
		return BroadcastResult{}, err
	}

	txid, err := c.Broadcast(ctx, args.TxHex)
	if err != nil {
		return BroadcastResult{}, err
	}
	return BroadcastResult{TxID: txid}, nil
}

// DecodeTxMCP is the MCP wrapper for DecodeTx
func (c *Client) DecodeTxMCP(ctx context.Context, args DecodeTxArgs) (DecodeTxResult, error) {
	if err := validateArgs(args); err != nil {
		return DecodeTxResult{}, err
	}

	tx, err := c.DecodeTx(ctx, args.TxHex)
	if err != nil {
		return DecodeTxResult{}, err
	}
	return DecodeTxResult{Tx: tx}, nil
}

// BulkTxStatusMCP is the MCP wrapper for BulkTxStatus
func (c *Client) BulkTxStatusMCP(ctx context.Context, args BulkTxStatusArgs) (BulkTxStatusResult, error) {
	if err := ValidateBulk("txids", args.TxIDs, ValidateHash); err != nil {
		return BulkTxStatusResult{}, err
	}

	statuses, err := c.BulkTxStatus(ctx, args.TxIDs)
	if err != nil {
		return BulkTxStatusResult{}, err
	}
	return BulkTxStatusResult{Statuses: statuses}, nil
}

// MerkleProofMCP is the MCP wrapper for MerkleProof
func (c *Client) MerkleProofMCP(ctx context.Context, args MerkleProofArgs) (MerkleProofResult, error) {
	if err := validateArgs(args); err != nil {
		return MerkleProofResult{}, err
	}

	proof, err := c.MerkleProof(ctx, args.TxID)
	if err != nil {
		return MerkleProofResult{}, c.notFound(err, "transaction", args.TxID)
	}
	return MerkleProofResult{TxID: args.TxID, Proof: rawToAny(proof)}, nil
}

// MempoolInfoMCP is the MCP wrapper for MempoolInfo
func (c *Client) MempoolInfoMCP(ctx context.Context, _ MempoolInfoArgs) (MempoolInfoResult, error) {
	info, err := c.MempoolInfo(ctx)
	if err != nil {
		return MempoolInfoResult{}, err
	}
	return MempoolInfoResult{Info: info}, nil
}

// AddressInfoMCP is the MCP wrapper for AddressInfo and AddressUsed
func (c *Client) AddressInfoMCP(ctx context.Context, args AddressArgs) (AddressInfoResult, error) {
	if err := c.validateAddressArgs(args); err != nil {
		return AddressInfoResult{}, err
	}

	info, err := c.AddressInfo(ctx, args.Address)
	if err != nil {
		return AddressInfoResult{}, err
	}
	used, err := c.AddressUsed(ctx, args.Address)
	if err != nil {
		return AddressInfoResult{}, err
	}
	return AddressInfoResult{Info: info, Used: used}, nil
}

// BalanceMCP is the MCP wrapper for Balance
func (c *Client) BalanceMCP(ctx context.Context, args AddressArgs) (BalanceResult, error) {
	if err := c.validateAddressArgs(args); err != nil {
		return BalanceResult{}, err
	}

	bal, err := c.Balance(ctx, args.Address)
	if err != nil {
		return BalanceResult{}, err
	}
	return balanceResult(args.Address, *bal, ""), nil
}

// BulkBalanceMCP is the MCP wrapper for BulkBalance
func (c *Client) BulkBalanceMCP(ctx context.Context, args BulkAddressArgs) (BulkBalanceResult, error) {
	check := func(field, addr string) error { return ValidateAddress(c.Network(), field, addr) }
	if err := ValidateBulk("addresses", args.Addresses, check); err != nil {
		return BulkBalanceResult{}, err
	}

	entries, err := c.BulkBalance(ctx, args.Addresses)
	if err != nil {
		return BulkBalanceResult{}, err
	}

	balances := make([]BalanceResult, 0, len(entries))
	for _, e := range entries {
		balances = append(balances, balanceResult(e.Address, e.Balance, e.Error))
	}
	return BulkBalanceResult{Balances: balances}, nil
}

// HistoryMCP is the MCP wrapper for History
func (c *Client) HistoryMCP(ctx context.Context, args HistoryArgs) (HistoryResult, error) {
	if err := validateArgs(args); err != nil {
		return HistoryResult{}, err
	}
	if err := ValidateAddress(c.Network(), "address", args.Address); err != nil {
		return HistoryResult{}, err
	}

	history, err := c.History(ctx, args.Address)
	if err != nil {
		return HistoryResult{}, err
	}
	return historyResult(args.Address, history, args.Limit), nil
}

// UTXOsMCP is the MCP wrapper for UTXOs
func (c *Client) UTXOsMCP(ctx context.Context, args AddressArgs) (UTXOsResult, error) {
	if err := c.validateAddressArgs(args); err != nil {
		return UTXOsResult{}, err
	}

	utxos, err := c.UTXOs(ctx, args.Address)
	if err != nil {
		return UTXOsResult{}, err
	}
	return utxosResult(args.Address, utxos), nil
}

// ScriptHistoryMCP is the MCP wrapper for ScriptHistory
func (c *Client) ScriptHistoryMCP(ctx context.Context, args ScriptArgs) (HistoryResult, error) {
	if err := validateArgs(args); err != nil {
		return HistoryResult{}, err
	}

	history, err := c.ScriptHistory(ctx, args.ScriptHash)
	if err != nil {
		return HistoryResult{}, err
	}
	return historyResult(args.ScriptHash, history, args.Limit), nil
}

// ScriptUTXOsMCP is the MCP wrapper for ScriptUTXOs
func (c *Client) ScriptUTXOsMCP(ctx context.Context, args ScriptArgs) (UTXOsResult, error) {
	if err := validateArgs(args); err != nil {
		return UTXOsResult{}, err
	}

	utxos, err := c.ScriptUTXOs(ctx, args.ScriptHash)
	if err != nil {
		return UTXOsResult{}, err
	}
	return utxosResult(args.ScriptHash, utxos), nil
}

// ExchangeRateMCP is the MCP wrapper for ExchangeRate
func (c *Client) ExchangeRateMCP(ctx context.Context, _ ExchangeRateArgs) (ExchangeRateResult, error) {
	rate, err := c.ExchangeRate(ctx)
	if err != nil {
		return ExchangeRateResult{}, err
	}
	return ExchangeRateResult{Currency: rate.Currency, Rate: rate.Rate, Time: rate.Time}, nil
}

// HistoricalRateMCP is the MCP wrapper for HistoricalExchangeRate
func (c *Client) HistoricalRateMCP(ctx context.Context, args HistoricalRateArgs) (HistoricalRateResult, error) {
	if err := validateArgs(args); err != nil {
		return HistoricalRateResult{}, err
	}

	rates, err := c.HistoricalExchangeRate(ctx, args.From, args.To)
	if err != nil {
		return HistoricalRateResult{}, err
	}
	return HistoricalRateResult{Rates: rates, Count: len(rates)}, nil
}

// SearchMCP is the MCP wrapper for Search
func (c *Client) SearchMCP(ctx context.Context, args SearchArgs) (SearchResult, error) {
	if err := validateArgs(args); err != nil {
		return SearchResult{}, err
	}

	res, err := c.Search(ctx, args.Query)
	if err != nil {
		return SearchResult{}, err
	}
	return SearchResult{Results: res.Results, Count: len(res.Results)}, nil
}

// BlockStatsMCP is the MCP wrapper for BlockStatsByHash and BlockStatsByHeight
func (c *Client) BlockStatsMCP(ctx context.Context, args BlockStatsArgs) (BlockStatsResult, error) {
	if err := validateArgs(args); err != nil {
		return BlockStatsResult{}, err
	}
	if err := requireOneOf(args.Hash, args.Height); err != nil {
		return BlockStatsResult{}, err
	}

	var (
		stats BlockStats
		err   error
		id    string
	)
	if args.Hash != "" {
		id = args.Hash
		stats, err = c.BlockStatsByHash(ctx, args.Hash)
	} else {
		id = strconv.FormatInt(*args.Height, 10)
		stats, err = c.BlockStatsByHeight(ctx, *args.Height)
	}
	if err != nil {
		return BlockStatsResult{}, c.notFound(err, "block", id)
	}
	return BlockStatsResult{Stats: rawToAny(stats)}, nil
}

// MinerStatsMCP is the MCP wrapper for MinerBlockStats and MinerSummaryStats
func (c *Client) MinerStatsMCP(ctx context.Context, args MinerStatsArgs) (MinerStatsResult, error) {
	if err := validateArgs(args); err != nil {
		return MinerStatsResult{}, err
	}

	days := args.Days
	if days == 0 {
		days = 1
	}

	var (
		stats MinerStats
		err   error
	)
	if args.Summary {
		stats, err = c.MinerSummaryStats(ctx, days)
	} else {
		stats, err = c.MinerBlockStats(ctx, days)
	}
	if err != nil {
		return MinerStatsResult{}, err
	}
	return MinerStatsResult{Days: days, Stats: rawToAny(stats)}, nil
}

// FeeQuotesMCP is the MCP wrapper for FeeQuotes
func (c *Client) FeeQuotesMCP(ctx context.Context, _ FeeQuotesArgs) (FeeQuotesResult, error) {
	quotes, err := c.FeeQuotes(ctx)
	if err != nil {
		return FeeQuotesResult{}, err
	}
	return FeeQuotesResult{Quotes: rawToAny(quotes)}, nil
}

func (c *Client) validateAddressArgs(args AddressArgs) error {
	if err := validateArgs(args); err != nil {
		return err
	}
	return ValidateAddress(c.Network(), "address", args.Address)
}

// notFound turns a 404 from the service into a NotFoundError
func (c *Client) notFound(err error, entity, id string) error {
	if StatusCode(err) == http.StatusNotFound {
		return werrors.NewNotFoundError(c.Network().String(), entity, id)
	}
	return err
}

func requireOneOf(hash string, height *int64) error {
	switch {
	case hash == "" && height == nil:
		return werrors.NewValidationError("hash", "", "either hash or height is required")
	case hash != "" && height != nil:
		return werrors.NewValidationError("hash", "", "provide either hash or height, not both")
	}
	return nil
}

func balanceResult(address string, bal Balance, errMsg string) BalanceResult {
	return BalanceResult{
		Address:         address,
		ConfirmedSats:   bal.Confirmed,
		UnconfirmedSats: bal.Unconfirmed,
		ConfirmedBSV:    FormatBSV(bal.Confirmed),
		UnconfirmedBSV:  FormatBSV(bal.Unconfirmed),
		TotalBSV:        FormatBSV(bal.Confirmed + bal.Unconfirmed),
		Error:           errMsg,
	}
}

// historyResult keeps the most recent limit entries. The service lists
// history oldest first with unconfirmed entries (height 0) last.
func historyResult(subject string, history []HistoryEntry, limit int) HistoryResult {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	res := HistoryResult{Subject: subject, Total: len(history)}
	if len(history) > limit {
		history = history[len(history)-limit:]
		res.Truncated = true
	}
	res.Transactions = history
	if res.Transactions == nil {
		res.Transactions = []HistoryEntry{}
	}
	return res
}

func utxosResult(subject string, utxos []UTXO) UTXOsResult {
	var total int64
	for _, u := range utxos {
		total += u.Value
	}
	if utxos == nil {
		utxos = []UTXO{}
	}
	return UTXOsResult{
		Subject:   subject,
		UTXOs:     utxos,
		Count:     len(utxos),
		TotalSats: total,
		TotalBSV:  FormatBSV(total),
	}
}

// rawToAny decodes an undecoded body for structured tool output
func rawToAny(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}
