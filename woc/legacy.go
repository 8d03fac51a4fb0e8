package woc

import (
	"context"
	"net/url"
	"strconv"
)

// BulkBroadcast submits up to 100 raw transactions in one request. With
// feedback set the service reports the outcome of each transaction.
// Legacy profile only.
func (c *Client) BulkBroadcast(ctx context.Context, txhexes []string, feedback bool) (BroadcastFeedback, error) {
	if err := c.requireLegacy("BulkBroadcast"); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("feedback", strconv.FormatBool(feedback))

	var out BroadcastFeedback
	if err := c.postJSON(ctx, "bulk_broadcast", "tx/broadcast", query, txhexes, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FeeQuotes returns merchant API fee quotes. The quotes are served for
// mainnet regardless of the client's network. Legacy profile only.
func (c *Client) FeeQuotes(ctx context.Context) (FeeQuotes, error) {
	if err := c.requireLegacy("FeeQuotes"); err != nil {
		return nil, err
	}

	var quotes FeeQuotes
	if err := c.getJSON(ctx, "fee_quotes", c.feeQuoteURL, nil, &quotes); err != nil {
		return nil, err
	}
	return quotes, nil
}

// ReceiptPDF downloads the explorer's PDF receipt for a transaction.
// Legacy profile only.
func (c *Client) ReceiptPDF(ctx context.Context, txid string) ([]byte, error) {
	if err := c.requireLegacy("ReceiptPDF"); err != nil {
		return nil, err
	}
	return c.getBytes(ctx, "receipt_pdf", c.explorerURL+"/receipt/"+url.PathEscape(txid), nil)
}
