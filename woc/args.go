package woc

// StatusArgs has no parameters
type StatusArgs struct{}

// StatusResult reports API availability
type StatusResult struct {
	Online  bool   `json:"online"`
	Network string `json:"network"`
}

// ChainInfoArgs has no parameters
type ChainInfoArgs struct{}

// ChainInfoResult is the result of a chain info lookup
type ChainInfoResult struct {
	Network string     `json:"network"`
	Info    *ChainInfo `json:"info"`
}

// ChainTipsArgs has no parameters
type ChainTipsArgs struct{}

// ChainTipsResult lists chain tips
type ChainTipsResult struct {
	Tips  []ChainTip `json:"tips"`
	Count int        `json:"count"`
}

// GetBlockArgs selects a block by hash or by height
type GetBlockArgs struct {
	Hash       string `json:"hash,omitempty" jsonschema:"Block hash (64 hex characters). Provide either hash or height." validate:"omitempty,hash256"`
	Height     *int64 `json:"height,omitempty" jsonschema:"Block height. Provide either hash or height." validate:"omitempty,min=0"`
	IncludeTxs bool   `json:"include_txs,omitempty" jsonschema:"Include the transaction id list (default: false)"`
}

// GetBlockResult is the result of a block lookup
type GetBlockResult struct {
	Block *Block `json:"block"`
}

// BlockPageArgs selects one page of a large block's transactions
type BlockPageArgs struct {
	Hash string `json:"hash" jsonschema:"Block hash (64 hex characters)" validate:"required,hash256"`
	Page int    `json:"page" jsonschema:"Page number, starting at 1" validate:"min=1"`
}

// BlockPageResult lists transaction ids on one block page
type BlockPageResult struct {
	Hash  string   `json:"hash"`
	Page  int      `json:"page"`
	TxIDs []string `json:"txids"`
	Count int      `json:"count"`
}

// BlockHeaderArgs selects a block header by hash
type BlockHeaderArgs struct {
	Hash string `json:"hash" jsonschema:"Block hash (64 hex characters)" validate:"required,hash256"`
}

// BlockHeaderResult is the result of a header lookup
type BlockHeaderResult struct {
	Header *BlockHeader `json:"header"`
}

// LatestHeadersArgs has no parameters
type LatestHeadersArgs struct{}

// LatestHeadersResult lists recent block headers
type LatestHeadersResult struct {
	Headers []BlockHeader `json:"headers"`
	Count   int           `json:"count"`
}

// GetTxArgs selects a transaction
type GetTxArgs struct {
	TxID       string `json:"txid" jsonschema:"Transaction id (64 hex characters)" validate:"required,hash256"`
	IncludeHex bool   `json:"include_hex,omitempty" jsonschema:"Keep the raw hex in the response (default: false)"`
}

// GetTxResult is the result of a transaction lookup
type GetTxResult struct {
	Tx *Tx `json:"tx"`
}

// RawTxArgs selects a raw transaction or one of its outputs
type RawTxArgs struct {
	TxID        string `json:"txid" jsonschema:"Transaction id (64 hex characters)" validate:"required,hash256"`
	OutputIndex *int   `json:"output_index,omitempty" jsonschema:"Return only this output's hex" validate:"omitempty,min=0"`
}

// RawTxResult holds raw transaction hex
type RawTxResult struct {
	TxID        string `json:"txid"`
	OutputIndex *int   `json:"output_index,omitempty"`
	Hex         string `json:"hex"`
	Bytes       int    `json:"bytes"`
}

// BroadcastArgs carries a raw transaction
type BroadcastArgs struct {
	TxHex string `json:"txhex" jsonschema:"Raw transaction in hex" validate:"required,hexdata"`
}

// BroadcastResult is the txid of an accepted transaction
type BroadcastResult struct {
	TxID string `json:"txid"`
}

// DecodeTxArgs carries a raw transaction to decode
type DecodeTxArgs struct {
	TxHex string `json:"txhex" jsonschema:"Raw transaction in hex" validate:"required,hexdata"`
}

// DecodeTxResult is a decoded transaction
type DecodeTxResult struct {
	Tx *Tx `json:"tx"`
}

// BulkTxStatusArgs lists transactions to check
type BulkTxStatusArgs struct {
	TxIDs []string `json:"txids" jsonschema:"Up to 20 transaction ids"`
}

// BulkTxStatusResult lists confirmation states
type BulkTxStatusResult struct {
	Statuses []TxStatus `json:"statuses"`
}

// MerkleProofArgs selects a transaction
type MerkleProofArgs struct {
	TxID string `json:"txid" jsonschema:"Transaction id (64 hex characters)" validate:"required,hash256"`
}

// MerkleProofResult holds an inclusion proof
type MerkleProofResult struct {
	TxID  string `json:"txid"`
	Proof any    `json:"proof"`
}

// MempoolInfoArgs has no parameters
type MempoolInfoArgs struct{}

// MempoolInfoResult summarizes the mempool
type MempoolInfoResult struct {
	Info *MempoolInfo `json:"info"`
}

// AddressArgs selects an address
type AddressArgs struct {
	Address string `json:"address" jsonschema:"P2PKH or P2SH address for the server's network" validate:"required"`
}

// AddressInfoResult describes an address
type AddressInfoResult struct {
	Info *AddressInfo `json:"info"`
	Used bool         `json:"used"`
}

// BalanceResult is an address balance in satoshis and BSV
type BalanceResult struct {
	Address         string `json:"address"`
	ConfirmedSats   int64  `json:"confirmed_sats"`
	UnconfirmedSats int64  `json:"unconfirmed_sats"`
	ConfirmedBSV    string `json:"confirmed_bsv"`
	UnconfirmedBSV  string `json:"unconfirmed_bsv"`
	TotalBSV        string `json:"total_bsv"`
	Error           string `json:"error,omitempty"`
}

// BulkAddressArgs lists addresses
type BulkAddressArgs struct {
	Addresses []string `json:"addresses" jsonschema:"Up to 20 addresses"`
}

// BulkBalanceResult lists balances
type BulkBalanceResult struct {
	Balances []BalanceResult `json:"balances"`
}

// HistoryArgs selects an address history
type HistoryArgs struct {
	Address string `json:"address" jsonschema:"P2PKH or P2SH address for the server's network" validate:"required"`
	Limit   int    `json:"limit,omitempty" jsonschema:"Maximum entries to return, most recent first (default 100, max 1000)" validate:"min=0,max=1000"`
}

// HistoryResult lists transactions touching an address or script
type HistoryResult struct {
	Subject      string         `json:"subject"`
	Transactions []HistoryEntry `json:"transactions"`
	Total        int            `json:"total"`
	Truncated    bool           `json:"truncated,omitempty"`
}

// UTXOsResult lists unspent outputs with their total
type UTXOsResult struct {
	Subject   string `json:"subject"`
	UTXOs     []UTXO `json:"utxos"`
	Count     int    `json:"count"`
	TotalSats int64  `json:"total_sats"`
	TotalBSV  string `json:"total_bsv"`
}

// ScriptArgs selects a script hash
type ScriptArgs struct {
	ScriptHash string `json:"script_hash" jsonschema:"SHA-256 of the locking script, hex, byte-reversed" validate:"required,hash256"`
	Limit      int    `json:"limit,omitempty" jsonschema:"Maximum history entries to return (default 100, max 1000)" validate:"min=0,max=1000"`
}

// ExchangeRateArgs has no parameters
type ExchangeRateArgs struct{}

// ExchangeRateResult is the current rate
type ExchangeRateResult struct {
	Currency string  `json:"currency"`
	Rate     float64 `json:"rate"`
	Time     int64   `json:"time"`
}

// HistoricalRateArgs selects a time range
type HistoricalRateArgs struct {
	From int64 `json:"from" jsonschema:"Start of range, unix seconds" validate:"required,min=1"`
	To   int64 `json:"to" jsonschema:"End of range, unix seconds" validate:"required,gtefield=From"`
}

// HistoricalRateResult lists rates in a range
type HistoricalRateResult struct {
	Rates []ExchangeRate `json:"rates"`
	Count int            `json:"count"`
}

// SearchArgs carries a free-text search
type SearchArgs struct {
	Query string `json:"query" jsonschema:"Block hash or height, txid, address or other term" validate:"required,max=200"`
}

// SearchResult lists explorer links
type SearchResult struct {
	Results []SearchLink `json:"results"`
	Count   int          `json:"count"`
}

// BlockStatsArgs selects a block by hash or height
type BlockStatsArgs struct {
	Hash   string `json:"hash,omitempty" jsonschema:"Block hash (64 hex characters). Provide either hash or height." validate:"omitempty,hash256"`
	Height *int64 `json:"height,omitempty" jsonschema:"Block height. Provide either hash or height." validate:"omitempty,min=0"`
}

// BlockStatsResult holds block statistics
type BlockStatsResult struct {
	Stats any `json:"stats"`
}

// MinerStatsArgs selects a miner statistics window
type MinerStatsArgs struct {
	Days    int  `json:"days,omitempty" jsonschema:"Window in days: 1 or 30 (default 1)" validate:"omitempty,oneof=1 30"`
	Summary bool `json:"summary,omitempty" jsonschema:"Return the summary view instead of block counts"`
}

// MinerStatsResult holds miner statistics
type MinerStatsResult struct {
	Days  int `json:"days"`
	Stats any `json:"stats"`
}

// FeeQuotesArgs has no parameters
type FeeQuotesArgs struct{}

// FeeQuotesResult holds merchant API fee quotes
type FeeQuotesResult struct {
	Quotes any `json:"quotes"`
}
