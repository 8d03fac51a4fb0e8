package woc

import "context"

// MempoolInfo returns a summary of the mempool
func (c *Client) MempoolInfo(ctx context.Context) (*MempoolInfo, error) {
	var info MempoolInfo
	if err := c.getJSON(ctx, "mempool_info", "mempool/info", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// MempoolTxs returns the txids currently in the mempool
func (c *Client) MempoolTxs(ctx context.Context) ([]string, error) {
	var txids []string
	if err := c.getJSON(ctx, "mempool_txs", "mempool/raw", nil, &txids); err != nil {
		return nil, err
	}
	return txids, nil
}
