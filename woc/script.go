package woc

import (
	"context"
	"net/url"
)

// Script lookups take the hex SHA-256 of the locking script, byte-reversed
// as the service expects.

// ScriptUsed reports whether a script hash has ever been used
func (c *Client) ScriptUsed(ctx context.Context, scriptHash string) (bool, error) {
	var used bool
	if err := c.getJSON(ctx, "script_used", "script/"+url.PathEscape(scriptHash)+"/used", nil, &used); err != nil {
		return false, err
	}
	return used, nil
}

// ScriptHistory returns the transactions touching a script hash
func (c *Client) ScriptHistory(ctx context.Context, scriptHash string) ([]HistoryEntry, error) {
	var history []HistoryEntry
	if err := c.getJSON(ctx, "script_history", "script/"+url.PathEscape(scriptHash)+"/history", nil, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// ScriptUTXOs returns the unspent outputs locked by a script hash
func (c *Client) ScriptUTXOs(ctx context.Context, scriptHash string) ([]UTXO, error) {
	var utxos []UTXO
	if err := c.getJSON(ctx, "script_utxos", "script/"+url.PathEscape(scriptHash)+"/unspent", nil, &utxos); err != nil {
		return nil, err
	}
	return utxos, nil
}

// BulkScriptUTXOs returns unspent outputs of up to 20 script hashes
func (c *Client) BulkScriptUTXOs(ctx context.Context, scriptHashes []string) ([]ScriptUTXOs, error) {
	var utxos []ScriptUTXOs
	body := map[string][]string{"scripts": scriptHashes}
	if err := c.postJSON(ctx, "bulk_script_utxos", "scripts/unspent", nil, body, &utxos); err != nil {
		return nil, err
	}
	return utxos, nil
}
