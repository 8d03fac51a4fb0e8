package woc

import (
	"context"
	"net/url"
)

// AddressInfo returns what the node knows about an address
func (c *Client) AddressInfo(ctx context.Context, address string) (*AddressInfo, error) {
	var info AddressInfo
	if err := c.getJSON(ctx, "address_info", "address/"+url.PathEscape(address)+"/info", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// AddressUsed reports whether an address has ever appeared in a transaction
func (c *Client) AddressUsed(ctx context.Context, address string) (bool, error) {
	var used bool
	if err := c.getJSON(ctx, "address_used", "address/"+url.PathEscape(address)+"/used", nil, &used); err != nil {
		return false, err
	}
	return used, nil
}

// Balance returns the confirmed and unconfirmed balance of an address
func (c *Client) Balance(ctx context.Context, address string) (*Balance, error) {
	var bal Balance
	if err := c.getJSON(ctx, "balance", "address/"+url.PathEscape(address)+"/balance", nil, &bal); err != nil {
		return nil, err
	}
	return &bal, nil
}

// BulkBalance returns balances of up to 20 addresses
func (c *Client) BulkBalance(ctx context.Context, addresses []string) ([]AddressBalance, error) {
	var balances []AddressBalance
	body := map[string][]string{"addresses": addresses}
	if err := c.postJSON(ctx, "bulk_balance", "address/balance", nil, body, &balances); err != nil {
		return nil, err
	}
	return balances, nil
}

// History returns the transactions touching an address
func (c *Client) History(ctx context.Context, address string) ([]HistoryEntry, error) {
	var history []HistoryEntry
	if err := c.getJSON(ctx, "history", "address/"+url.PathEscape(address)+"/history", nil, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// UTXOs returns the unspent outputs of an address
func (c *Client) UTXOs(ctx context.Context, address string) ([]UTXO, error) {
	var utxos []UTXO
	if err := c.getJSON(ctx, "utxos", "address/"+url.PathEscape(address)+"/unspent", nil, &utxos); err != nil {
		return nil, err
	}
	return utxos, nil
}

// BulkUTXOs returns unspent outputs of up to 20 addresses
func (c *Client) BulkUTXOs(ctx context.Context, addresses []string) ([]AddressUTXOs, error) {
	var utxos []AddressUTXOs
	body := map[string][]string{"addresses": addresses}
	if err := c.postJSON(ctx, "bulk_utxos", "address/unspent", nil, body, &utxos); err != nil {
		return nil, err
	}
	return utxos, nil
}

// StatementPDF downloads the explorer's PDF statement for an address
func (c *Client) StatementPDF(ctx context.Context, address string) ([]byte, error) {
	return c.getBytes(ctx, "statement_pdf", c.explorerURL+"/statement/"+url.PathEscape(address), nil)
}
