package woc

import "encoding/json"

// ChainInfo is the node's view of the chain
type ChainInfo struct {
	Chain                string  `json:"chain"`
	Blocks               int64   `json:"blocks"`
	Headers              int64   `json:"headers"`
	BestBlockHash        string  `json:"bestblockhash"`
	Difficulty           float64 `json:"difficulty"`
	MedianTime           int64   `json:"mediantime"`
	VerificationProgress float64 `json:"verificationprogress"`
	Pruned               bool    `json:"pruned"`
	ChainWork            string  `json:"chainwork"`
}

// ChainTip is one entry of the chain tips list
type ChainTip struct {
	Height    int64  `json:"height"`
	Hash      string `json:"hash"`
	BranchLen int64  `json:"branchlen"`
	Status    string `json:"status"` // active, valid-fork, valid-headers, headers-only, invalid
}

// Peer is a node connected to the service's node
type Peer struct {
	ID             int64   `json:"id"`
	Addr           string  `json:"addr"`
	AddrLocal      string  `json:"addrlocal,omitempty"`
	Services       string  `json:"services"`
	RelayTxes      bool    `json:"relaytxes"`
	LastSend       int64   `json:"lastsend"`
	LastRecv       int64   `json:"lastrecv"`
	BytesSent      int64   `json:"bytessent"`
	BytesRecv      int64   `json:"bytesrecv"`
	ConnTime       int64   `json:"conntime"`
	PingTime       float64 `json:"pingtime"`
	Version        int64   `json:"version"`
	SubVer         string  `json:"subver"`
	Inbound        bool    `json:"inbound"`
	StartingHeight int64   `json:"startingheight"`
	BanScore       int64   `json:"banscore"`
	SyncedHeaders  int64   `json:"synced_headers"`
	SyncedBlocks   int64   `json:"synced_blocks"`
	Whitelisted    bool    `json:"whitelisted"`
}

// Block is a block with its transaction ids
type Block struct {
	Hash              string      `json:"hash"`
	Confirmations     int64       `json:"confirmations"`
	Size              int64       `json:"size"`
	Height            int64       `json:"height"`
	Version           int64       `json:"version"`
	VersionHex        string      `json:"versionHex"`
	MerkleRoot        string      `json:"merkleroot"`
	NumTx             int64       `json:"num_tx"`
	Time              int64       `json:"time"`
	MedianTime        int64       `json:"mediantime"`
	Nonce             uint64      `json:"nonce"`
	Bits              string      `json:"bits"`
	Difficulty        float64     `json:"difficulty"`
	ChainWork         string      `json:"chainwork"`
	PreviousBlockHash string      `json:"previousblockhash,omitempty"`
	NextBlockHash     string      `json:"nextblockhash,omitempty"`
	TxCount           int64       `json:"txcount"`
	Tx                []string    `json:"tx"`
	TotalFees         float64     `json:"totalFees"`
	Miner             string      `json:"miner,omitempty"`
	Pages             *BlockPages `json:"pages,omitempty"`
}

// BlockPages points at the paged transaction lists of large blocks
type BlockPages struct {
	URI  []string `json:"uri"`
	Size int64    `json:"size"`
}

// BlockHeader is a block without its transactions
type BlockHeader struct {
	Hash              string  `json:"hash"`
	Confirmations     int64   `json:"confirmations"`
	Size              int64   `json:"size"`
	Height            int64   `json:"height"`
	Version           int64   `json:"version"`
	VersionHex        string  `json:"versionHex"`
	MerkleRoot        string  `json:"merkleroot"`
	Time              int64   `json:"time"`
	MedianTime        int64   `json:"mediantime"`
	Nonce             uint64  `json:"nonce"`
	Bits              string  `json:"bits"`
	Difficulty        float64 `json:"difficulty"`
	ChainWork         string  `json:"chainwork"`
	PreviousBlockHash string  `json:"previousblockhash,omitempty"`
	NextBlockHash     string  `json:"nextblockhash,omitempty"`
	NumTx             int64   `json:"nTx"`
}

// Tx is a decoded transaction
type Tx struct {
	TxID          string `json:"txid"`
	Hash          string `json:"hash"`
	Version       int64  `json:"version"`
	Size          int64  `json:"size"`
	LockTime      uint32 `json:"locktime"`
	Vin           []Vin  `json:"vin"`
	Vout          []Vout `json:"vout"`
	BlockHash     string `json:"blockhash,omitempty"`
	Confirmations int64  `json:"confirmations,omitempty"`
	Time          int64  `json:"time,omitempty"`
	BlockTime     int64  `json:"blocktime,omitempty"`
	BlockHeight   int64  `json:"blockheight,omitempty"`
	Hex           string `json:"hex,omitempty"`
	Error         string `json:"error,omitempty"` // set per entry by bulk lookups
}

// Vin is a transaction input
type Vin struct {
	Coinbase  string     `json:"coinbase,omitempty"`
	TxID      string     `json:"txid,omitempty"`
	Vout      uint32     `json:"vout"`
	ScriptSig *ScriptSig `json:"scriptSig,omitempty"`
	Sequence  uint32     `json:"sequence"`
}

// ScriptSig is an unlocking script
type ScriptSig struct {
	Asm string `json:"asm"`
	Hex string `json:"hex"`
}

// Vout is a transaction output. Value is in BSV.
type Vout struct {
	Value        float64      `json:"value"`
	N            uint32       `json:"n"`
	ScriptPubKey ScriptPubKey `json:"scriptPubKey"`
}

// ScriptPubKey is a locking script
type ScriptPubKey struct {
	Asm         string   `json:"asm"`
	Hex         string   `json:"hex"`
	ReqSigs     int      `json:"reqSigs,omitempty"`
	Type        string   `json:"type"`
	Addresses   []string `json:"addresses,omitempty"`
	IsTruncated bool     `json:"isTruncated,omitempty"`
}

// TxStatus is the confirmation state of one transaction
type TxStatus struct {
	TxID          string `json:"txid"`
	BlockHash     string `json:"blockhash,omitempty"`
	BlockHeight   int64  `json:"blockheight,omitempty"`
	BlockTime     int64  `json:"blocktime,omitempty"`
	Confirmations int64  `json:"confirmations,omitempty"`
	Error         string `json:"error,omitempty"`
}

// TxHex is the raw form of one transaction from a bulk lookup
type TxHex struct {
	TxID          string `json:"txid"`
	Hex           string `json:"hex"`
	BlockHash     string `json:"blockhash,omitempty"`
	BlockHeight   int64  `json:"blockheight,omitempty"`
	BlockTime     int64  `json:"blocktime,omitempty"`
	Confirmations int64  `json:"confirmations,omitempty"`
	Error         string `json:"error,omitempty"`
}

// MempoolInfo summarizes the node's mempool
type MempoolInfo struct {
	Size          int64   `json:"size"`
	Bytes         int64   `json:"bytes"`
	Usage         int64   `json:"usage"`
	MaxMempool    int64   `json:"maxmempool"`
	MempoolMinFee float64 `json:"mempoolminfee"`
}

// AddressInfo describes an address as seen by the node
type AddressInfo struct {
	IsValid      bool   `json:"isvalid"`
	Address      string `json:"address"`
	ScriptPubKey string `json:"scriptPubKey"`
	IsMine       bool   `json:"ismine"`
	IsWatchOnly  bool   `json:"iswatchonly"`
	IsScript     bool   `json:"isscript"`
}

// Balance is an address balance in satoshis
type Balance struct {
	Confirmed   int64 `json:"confirmed"`
	Unconfirmed int64 `json:"unconfirmed"`
}

// AddressBalance is one entry of a bulk balance lookup
type AddressBalance struct {
	Address string  `json:"address"`
	Balance Balance `json:"balance"`
	Error   string  `json:"error,omitempty"`
}

// HistoryEntry is a transaction touching an address or script
type HistoryEntry struct {
	TxHash string `json:"tx_hash"`
	Height int64  `json:"height"` // 0 while unconfirmed
}

// UTXO is an unspent output. Value is in satoshis.
type UTXO struct {
	Height int64  `json:"height"`
	TxPos  uint32 `json:"tx_pos"`
	TxHash string `json:"tx_hash"`
	Value  int64  `json:"value"`
}

// AddressUTXOs is one entry of a bulk address UTXO lookup
type AddressUTXOs struct {
	Address string `json:"address"`
	Unspent []UTXO `json:"unspent"`
	Error   string `json:"error,omitempty"`
}

// ScriptUTXOs is one entry of a bulk script UTXO lookup
type ScriptUTXOs struct {
	Script  string `json:"script"`
	Unspent []UTXO `json:"unspent"`
	Error   string `json:"error,omitempty"`
}

// ExchangeRate is the BSV price in a fiat currency
type ExchangeRate struct {
	Currency string  `json:"currency,omitempty"`
	Rate     float64 `json:"rate"`
	Time     int64   `json:"time"`
}

// SearchResults lists explorer pages matching a query
type SearchResults struct {
	Results []SearchLink `json:"results"`
}

// SearchLink is one search hit
type SearchLink struct {
	Type string `json:"type"` // block, tx, address, ...
	URL  string `json:"url"`
}

// Endpoints whose shape varies between deployments are returned undecoded.
type (
	// HeaderResources lists downloadable header archives
	HeaderResources = json.RawMessage

	// TxPropagation reports how widely a transaction has propagated
	TxPropagation = json.RawMessage

	// MerkleProof is the inclusion proof of a confirmed transaction
	MerkleProof = json.RawMessage

	// OpReturnData holds the OP_RETURN outputs of a transaction
	OpReturnData = json.RawMessage

	// BlockStats holds per-block statistics
	BlockStats = json.RawMessage

	// MinerStats holds per-miner statistics over a number of days
	MinerStats = json.RawMessage

	// FeeQuotes holds merchant API fee quotes
	FeeQuotes = json.RawMessage

	// BroadcastFeedback is the per-transaction outcome of a bulk broadcast
	BroadcastFeedback = json.RawMessage
)
