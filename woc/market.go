package woc

import (
	"context"
	"net/url"
	"strconv"
)

// ExchangeRate returns the current BSV exchange rate
func (c *Client) ExchangeRate(ctx context.Context) (*ExchangeRate, error) {
	var rate ExchangeRate
	if err := c.getJSON(ctx, "exchange_rate", "exchangerate", nil, &rate); err != nil {
		return nil, err
	}
	return &rate, nil
}

// HistoricalExchangeRate returns rates between two unix timestamps
func (c *Client) HistoricalExchangeRate(ctx context.Context, from, to int64) ([]ExchangeRate, error) {
	query := url.Values{}
	if from > 0 {
		query.Set("from", strconv.FormatInt(from, 10))
	}
	if to > 0 {
		query.Set("to", strconv.FormatInt(to, 10))
	}

	var rates []ExchangeRate
	if err := c.getJSON(ctx, "historical_exchange_rate", "exchangerate/historical", query, &rates); err != nil {
		return nil, err
	}
	return rates, nil
}
