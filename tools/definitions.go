package tools

// AllTools contains all tool specifications for the WhatsOnChain MCP server.
// Tools are organized by category for easier maintenance.
// Tool descriptions follow a structured format for optimal LLM tool selection:
// - USE WHEN: Natural language triggers
// - NOT FOR: Disambiguation from similar tools
// - PARAMETERS: Key arguments with defaults
// - RETURNS: What the tool returns
var AllTools = []ToolSpec{
	// ==========================================================================
	// CHAIN TOOLS
	// ==========================================================================
	{
		Name:     "woc_status",
		Method:   "Status",
		Title:    "API Status",
		Category: "chain",
		Description: `Check whether the WhatsOnChain API is reachable for the configured network.

USE WHEN: User asks "is WhatsOnChain up", "can you reach the explorer", or before a batch of lookups.

NOT FOR: Chain height or sync state (use woc_chain_info).

RETURNS: online flag and network name.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "woc_chain_info",
		Method:   "ChainInfo",
		Title:    "Chain Info",
		Category: "chain",
		Description: `Get the current state of the BSV chain: height, best block hash, difficulty, median time.

USE WHEN: User asks "what is the current block height", "latest block", "chain difficulty".

NOT FOR: Details of one block (use woc_get_block). Competing branches (use woc_chain_tips).

RETURNS: Chain name, block count, best block hash, difficulty, verification progress.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "woc_chain_tips",
		Method:   "ChainTips",
		Title:    "Chain Tips",
		Category: "chain",
		Description: `List known chain tips including orphaned and competing branches.

USE WHEN: User asks about forks, reorgs, stale branches.

NOT FOR: Just the current height (use woc_chain_info).

RETURNS: Tips with height, hash, branch length and status.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "woc_mempool_info",
		Method:   "MempoolInfo",
		Title:    "Mempool Info",
		Category: "chain",
		Description: `Summarize the node's mempool.

USE WHEN: User asks "how busy is the network", "how many unconfirmed transactions".

RETURNS: Transaction count, byte size, memory usage and minimum fee.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "woc_search",
		Method:   "Search",
		Title:    "Search Explorer",
		Category: "chain",
		Description: `Resolve a free-text term to explorer pages. Accepts block hashes and heights, txids, addresses and other identifiers.

USE WHEN: User pastes an identifier without saying what it is, or asks "what is this hash".

NOT FOR: Fetching the data itself once the type is known (use the specific tool).

PARAMETERS:
- query: Term to look up (required, max 200 characters)

RETURNS: Matching links with their type (block, tx, address).`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// BLOCK TOOLS
	// ==========================================================================
	{
		Name:     "woc_get_block",
		Method:   "GetBlock",
		Title:    "Get Block",
		Category: "block",
		Description: `Get a block by hash or by height.

USE WHEN: User asks "show block 800000", "what's in block <hash>", "when was block X mined".

NOT FOR: The transaction list of very large blocks (use woc_block_page). Header only (use woc_block_header).

PARAMETERS:
- hash: Block hash (64 hex characters), or
- height: Block height
- include_txs: Include the txid list (default false)

RETURNS: Block with height, time, size, merkle root, transaction count, miner and neighbouring hashes.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "woc_block_page",
		Method:   "BlockPage",
		Title:    "Block Transaction Page",
		Category: "block",
		Description: `Get one page of transaction ids from a block with more than 1000 transactions.

USE WHEN: woc_get_block reported pages, or the user wants every txid of a big block.

PARAMETERS:
- hash: Block hash (required)
- page: Page number starting at 1 (required)

RETURNS: Transaction ids on that page.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "woc_block_header",
		Method:   "BlockHeader",
		Title:    "Block Header",
		Category: "block",
		Description: `Get a block header by hash.

USE WHEN: User needs header fields (bits, nonce, merkle root) without the transaction list.

PARAMETERS:
- hash: Block hash (required)

RETURNS: Header fields and confirmations.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "woc_latest_headers",
		Method:   "LatestHeaders",
		Title:    "Latest Block Headers",
		Category: "block",
		Description: `List the most recent block headers.

USE WHEN: User asks "show the last few blocks", "recent block times".

RETURNS: Recent headers, newest first.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "woc_block_stats",
		Method:   "BlockStats",
		Title:    "Block Statistics",
		Category: "block",
		Description: `Get statistics of a block by hash or height: fees, sizes, input and output counts.

USE WHEN: User asks "how much in fees did block X pay", "block X stats".

PARAMETERS:
- hash: Block hash, or
- height: Block height

RETURNS: Statistics object as reported by the service.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// TRANSACTION TOOLS
	// ==========================================================================
	{
		Name:     "woc_get_tx",
		Method:   "GetTx",
		Title:    "Get Transaction",
		Category: "tx",
		Description: `Get a decoded transaction by txid.

USE WHEN: User asks "look up transaction <txid>", "who paid whom", "is tx X confirmed".

NOT FOR: Raw hex only (use woc_raw_tx). Many confirmations at once (use woc_bulk_tx_status).

PARAMETERS:
- txid: Transaction id (required)
- include_hex: Keep the raw hex (default false)

RETURNS: Inputs, outputs with values and scripts, block hash, confirmations and time.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "woc_raw_tx",
		Method:   "RawTx",
		Title:    "Raw Transaction",
		Category: "tx",
		Description: `Get the raw hex of a transaction, or of one of its outputs.

USE WHEN: User needs the serialized transaction for signing tools, SPV or rebroadcast.

PARAMETERS:
- txid: Transaction id (required)
- output_index: Return only this output (optional)

RETURNS: Hex string and its size in bytes.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "woc_broadcast",
		Method:   "Broadcast",
		Title:    "Broadcast Transaction",
		Category: "tx",
		Description: `Broadcast a signed raw transaction to the network.

USE WHEN: User explicitly asks to send or broadcast a transaction they provide.

NOT FOR: Checking a transaction without sending it (use woc_decode_tx).

PARAMETERS:
- txhex: Signed raw transaction in hex (required)

RETURNS: The txid of the accepted transaction. Rejections carry the node's reason.`,
		ReadOnly:  false,
		OpenWorld: true,
	},
	{
		Name:     "woc_decode_tx",
		Method:   "DecodeTx",
		Title:    "Decode Transaction",
		Category: "tx",
		Description: `Decode a raw transaction without broadcasting it.

USE WHEN: User pastes transaction hex and asks what it does.

PARAMETERS:
- txhex: Raw transaction in hex (required)

RETURNS: Decoded inputs and outputs.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "woc_bulk_tx_status",
		Method:   "BulkTxStatus",
		Title:    "Bulk Transaction Status",
		Category: "tx",
		Description: `Check confirmation status of up to 20 transactions in one call.

USE WHEN: User has a list of txids and wants to know which are confirmed.

PARAMETERS:
- txids: Up to 20 transaction ids (required)

RETURNS: Per-txid block height, confirmations and any lookup error.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "woc_merkle_proof",
		Method:   "MerkleProof",
		Title:    "Merkle Proof",
		Category: "tx",
		Description: `Get the merkle inclusion proof of a confirmed transaction.

USE WHEN: User needs SPV proof that a transaction is in a block.

PARAMETERS:
- txid: Transaction id (required)

RETURNS: Proof nodes and target block.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// ADDRESS TOOLS
	// ==========================================================================
	{
		Name:     "woc_address_info",
		Method:   "AddressInfo",
		Title:    "Address Info",
		Category: "address",
		Description: `Validate an address and report whether it has ever been used.

USE WHEN: User asks "is this address valid", "has this address received anything".

PARAMETERS:
- address: P2PKH or P2SH address (required)

RETURNS: Validity, script pubkey and a used flag.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "woc_balance",
		Method:   "Balance",
		Title:    "Address Balance",
		Category: "address",
		Description: `Get the confirmed and unconfirmed balance of an address.

USE WHEN: User asks "how much BSV is in <address>", "what's my balance".

NOT FOR: Several addresses at once (use woc_bulk_balance). Spendable outputs (use woc_utxos).

PARAMETERS:
- address: P2PKH or P2SH address (required)

RETURNS: Balances in satoshis and BSV, plus total.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "woc_bulk_balance",
		Method:   "BulkBalance",
		Title:    "Bulk Address Balance",
		Category: "address",
		Description: `Get balances of up to 20 addresses in one call.

USE WHEN: User has a wallet's address list and wants the totals.

PARAMETERS:
- addresses: Up to 20 addresses (required)

RETURNS: Per-address balances in satoshis and BSV.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "woc_history",
		Method:   "History",
		Title:    "Address History",
		Category: "address",
		Description: `List transactions that touched an address.

USE WHEN: User asks "show transactions for <address>", "when did this address last receive".

PARAMETERS:
- address: P2PKH or P2SH address (required)
- limit: Most recent entries to return (default 100, max 1000)

RETURNS: Txids with block heights (0 while unconfirmed), total count and a truncated flag.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "woc_utxos",
		Method:   "UTXOs",
		Title:    "Address UTXOs",
		Category: "address",
		Description: `List unspent outputs of an address.

USE WHEN: User wants to build a transaction or asks "what coins can I spend".

PARAMETERS:
- address: P2PKH or P2SH address (required)

RETURNS: Outputs with txid, index, value and height, plus their total in satoshis and BSV.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// SCRIPT TOOLS
	// ==========================================================================
	{
		Name:     "woc_script_history",
		Method:   "ScriptHistory",
		Title:    "Script History",
		Category: "script",
		Description: `List transactions that touched a locking script, identified by its script hash.

USE WHEN: The output is not a standard address (custom scripts, tokens), or the user gives a script hash.

NOT FOR: Ordinary addresses (use woc_history).

PARAMETERS:
- script_hash: SHA-256 of the script, byte-reversed hex (required)
- limit: Most recent entries to return (default 100, max 1000)

RETURNS: Txids with block heights, total count and a truncated flag.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "woc_script_utxos",
		Method:   "ScriptUTXOs",
		Title:    "Script UTXOs",
		Category: "script",
		Description: `List unspent outputs locked by a script hash.

PARAMETERS:
- script_hash: SHA-256 of the script, byte-reversed hex (required)

RETURNS: Outputs with their total in satoshis and BSV.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// MARKET AND STATISTICS TOOLS
	// ==========================================================================
	{
		Name:     "woc_exchange_rate",
		Method:   "ExchangeRate",
		Title:    "Exchange Rate",
		Category: "market",
		Description: `Get the current BSV/USD exchange rate.

USE WHEN: User asks "what is BSV worth", "convert this balance to dollars".

RETURNS: Currency, rate and timestamp.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "woc_historical_rate",
		Method:   "HistoricalRate",
		Title:    "Historical Exchange Rate",
		Category: "market",
		Description: `Get BSV/USD rates over a time range.

USE WHEN: User asks "what was BSV worth last month", "price on date X".

PARAMETERS:
- from: Range start, unix seconds (required)
- to: Range end, unix seconds (required)

RETURNS: Rates with timestamps.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "woc_miner_stats",
		Method:   "MinerStats",
		Title:    "Miner Statistics",
		Category: "stats",
		Description: `Get blocks mined per miner, or a per-miner summary, over the last 1 or 30 days.

USE WHEN: User asks "who is mining BSV", "hash share of miners".

PARAMETERS:
- days: 1 or 30 (default 1)
- summary: Return the summary view (default false)

RETURNS: Per-miner statistics as reported by the service.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// LEGACY PROFILE TOOLS
	// ==========================================================================
	{
		Name:     "woc_fee_quotes",
		Method:   "FeeQuotes",
		Title:    "Miner Fee Quotes",
		Category: "market",
		Description: `Get merchant API fee quotes from miners. Mainnet only.

USE WHEN: User asks "what fee rate should I use", "current miner fees".

RETURNS: Fee quotes per provider.`,
		Legacy:     true,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
}
