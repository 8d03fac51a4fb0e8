package woc

import (
	"context"
	"encoding/json"
	"strings"
)

// Status reports whether the API is up. It is true only when the service
// answers with the StatusSentinel text.
func (c *Client) Status(ctx context.Context) (bool, error) {
	body, err := c.getText(ctx, "status", "woc", nil)
	if err != nil {
		return false, err
	}

	text := strings.TrimSpace(body)
	var s string
	if json.Unmarshal([]byte(text), &s) == nil {
		text = s
	}
	return text == StatusSentinel, nil
}

// ChainInfo returns the current state of the chain
func (c *Client) ChainInfo(ctx context.Context) (*ChainInfo, error) {
	var info ChainInfo
	if err := c.getJSON(ctx, "chain_info", "chain/info", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// ChainTips returns the known chain tips including forks
func (c *Client) ChainTips(ctx context.Context) ([]ChainTip, error) {
	var tips []ChainTip
	if err := c.getJSON(ctx, "chain_tips", "chain/tips", nil, &tips); err != nil {
		return nil, err
	}
	return tips, nil
}

// PeerInfo returns the peers of the service's node
func (c *Client) PeerInfo(ctx context.Context) ([]Peer, error) {
	var peers []Peer
	if err := c.getJSON(ctx, "peer_info", "peer/info", nil, &peers); err != nil {
		return nil, err
	}
	return peers, nil
}

// CirculatingSupply returns the number of BSV in circulation
func (c *Client) CirculatingSupply(ctx context.Context) (float64, error) {
	var supply float64
	if err := c.getJSON(ctx, "circulating_supply", "circulatingsupply", nil, &supply); err != nil {
		return 0, err
	}
	return supply, nil
}

// Search returns explorer links for a block, transaction, address or other term
func (c *Client) Search(ctx context.Context, query string) (*SearchResults, error) {
	var results SearchResults
	body := map[string]string{"query": query}
	if err := c.postJSON(ctx, "search", "search/links", nil, body, &results); err != nil {
		return nil, err
	}
	return &results, nil
}
