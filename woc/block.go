package woc

import (
	"context"
	"net/url"
	"strconv"
)

// BlockByHash returns a block by its hash
func (c *Client) BlockByHash(ctx context.Context, hash string) (*Block, error) {
	var block Block
	if err := c.getJSON(ctx, "block_by_hash", "block/hash/"+url.PathEscape(hash), nil, &block); err != nil {
		return nil, err
	}
	return &block, nil
}

// BlockByHeight returns a block by its height
func (c *Client) BlockByHeight(ctx context.Context, height int64) (*Block, error) {
	var block Block
	if err := c.getJSON(ctx, "block_by_height", "block/height/"+strconv.FormatInt(height, 10), nil, &block); err != nil {
		return nil, err
	}
	return &block, nil
}

// BlockPage returns one page of transaction ids for blocks with more than
// 1000 transactions. Pages are numbered from 1.
func (c *Client) BlockPage(ctx context.Context, hash string, page int) ([]string, error) {
	var txids []string
	path := "block/hash/" + url.PathEscape(hash) + "/page/" + strconv.Itoa(page)
	if err := c.getJSON(ctx, "block_page", path, nil, &txids); err != nil {
		return nil, err
	}
	return txids, nil
}

// BlockHeaderByHash returns one block header
func (c *Client) BlockHeaderByHash(ctx context.Context, hash string) (*BlockHeader, error) {
	var header BlockHeader
	if err := c.getJSON(ctx, "block_header", "block/"+url.PathEscape(hash)+"/header", nil, &header); err != nil {
		return nil, err
	}
	return &header, nil
}

// BlockHeaders returns the most recent block headers
func (c *Client) BlockHeaders(ctx context.Context) ([]BlockHeader, error) {
	var headers []BlockHeader
	if err := c.getJSON(ctx, "block_headers", "block/headers", nil, &headers); err != nil {
		return nil, err
	}
	return headers, nil
}

// BlockHeaderResources lists the downloadable header archives
func (c *Client) BlockHeaderResources(ctx context.Context) (HeaderResources, error) {
	var res HeaderResources
	if err := c.getJSON(ctx, "block_header_resources", "block/headers/resources", nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// LatestHeaderBytes returns the latest count headers as concatenated 80-byte
// binary headers. A count of 0 leaves the choice to the server.
func (c *Client) LatestHeaderBytes(ctx context.Context, count int) ([]byte, error) {
	query := url.Values{}
	if count > 0 {
		query.Set("count", strconv.Itoa(count))
	}
	return c.getBytes(ctx, "latest_header_bytes", "block/headers/latest", query)
}

// BlockStatsByHeight returns statistics of the block at height
func (c *Client) BlockStatsByHeight(ctx context.Context, height int64) (BlockStats, error) {
	var stats BlockStats
	path := "block/height/" + strconv.FormatInt(height, 10) + "/stats"
	if err := c.getJSON(ctx, "block_stats_by_height", path, nil, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// BlockStatsByHash returns statistics of the block with hash
func (c *Client) BlockStatsByHash(ctx context.Context, hash string) (BlockStats, error) {
	var stats BlockStats
	if err := c.getJSON(ctx, "block_stats_by_hash", "block/hash/"+url.PathEscape(hash)+"/stats", nil, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}
