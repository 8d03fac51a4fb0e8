package woc

import (
	"context"
	"net/url"
	"strconv"
)

// MinerBlockStats returns blocks mined per miner over the last days
func (c *Client) MinerBlockStats(ctx context.Context, days int) (MinerStats, error) {
	return c.minerStats(ctx, "miner_block_stats", "miner/blocks/stats", days)
}

// MinerSummaryStats returns a per-miner summary over the last days
func (c *Client) MinerSummaryStats(ctx context.Context, days int) (MinerStats, error) {
	return c.minerStats(ctx, "miner_summary_stats", "miner/summary/stats", days)
}

func (c *Client) minerStats(ctx context.Context, op, path string, days int) (MinerStats, error) {
	query := url.Values{}
	if days > 0 {
		query.Set("days", strconv.Itoa(days))
	}

	var stats MinerStats
	if err := c.getJSON(ctx, op, path, query, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}
