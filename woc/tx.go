package woc

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
)

// TxByHash returns a decoded transaction
func (c *Client) TxByHash(ctx context.Context, txid string) (*Tx, error) {
	var tx Tx
	if err := c.getJSON(ctx, "tx_by_hash", "tx/hash/"+url.PathEscape(txid), nil, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// TxPropagation reports how far a transaction has propagated through the network
func (c *Client) TxPropagation(ctx context.Context, txid string) (TxPropagation, error) {
	var prop TxPropagation
	if err := c.getJSON(ctx, "tx_propagation", "tx/hash/"+url.PathEscape(txid)+"/propagation", nil, &prop); err != nil {
		return nil, err
	}
	return prop, nil
}

// Broadcast submits a raw transaction and returns its txid. A transaction
// the node rejects yields a *ServerError carrying the rejection message.
// The txid may come back as a JSON string or as bare text.
func (c *Client) Broadcast(ctx context.Context, txhex string) (string, error) {
	body := map[string]string{"txhex": txhex}
	resp, u, err := c.post(ctx, "broadcast", "tx/raw", nil, body)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(string(resp.Body))
	var txid string
	if json.Unmarshal([]byte(text), &txid) == nil {
		return txid, nil
	}
	if text == "" || strings.ContainsAny(text[:1], "{[") {
		se := newServerError(resp.StatusCode, u, resp.Body)
		se.Message = "malformed broadcast response: expected a txid"
		return "", se
	}
	return text, nil
}

// BulkTxDetails returns decoded transactions for up to 20 txids
func (c *Client) BulkTxDetails(ctx context.Context, txids []string) ([]Tx, error) {
	var txs []Tx
	body := map[string][]string{"txids": txids}
	if err := c.postJSON(ctx, "bulk_tx_details", "txs", nil, body, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// BulkTxStatus returns the confirmation state of up to 20 txids
func (c *Client) BulkTxStatus(ctx context.Context, txids []string) ([]TxStatus, error) {
	var statuses []TxStatus
	body := map[string][]string{"txids": txids}
	if err := c.postJSON(ctx, "bulk_tx_status", "txs/status", nil, body, &statuses); err != nil {
		return nil, err
	}
	return statuses, nil
}

// DecodeTx decodes a raw transaction without broadcasting it
func (c *Client) DecodeTx(ctx context.Context, txhex string) (*Tx, error) {
	var tx Tx
	body := map[string]string{"txhex": txhex}
	if err := c.postJSON(ctx, "decode_tx", "tx/decode", nil, body, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// RawTx returns a transaction as hex
func (c *Client) RawTx(ctx context.Context, txid string) (string, error) {
	return c.getText(ctx, "raw_tx", "tx/"+url.PathEscape(txid)+"/hex", nil)
}

// BulkRawTx returns up to 20 transactions as hex
func (c *Client) BulkRawTx(ctx context.Context, txids []string) ([]TxHex, error) {
	var txs []TxHex
	body := map[string][]string{"txids": txids}
	if err := c.postJSON(ctx, "bulk_raw_tx", "txs/hex", nil, body, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// RawTxOutput returns one output of a transaction as hex
func (c *Client) RawTxOutput(ctx context.Context, txid string, index int) (string, error) {
	path := "tx/" + url.PathEscape(txid) + "/out/" + strconv.Itoa(index) + "/hex"
	return c.getText(ctx, "raw_tx_output", path, nil)
}

// MerkleProof returns the merkle inclusion proof of a confirmed transaction
func (c *Client) MerkleProof(ctx context.Context, txid string) (MerkleProof, error) {
	var proof MerkleProof
	if err := c.getJSON(ctx, "merkle_proof", "tx/"+url.PathEscape(txid)+"/proof", nil, &proof); err != nil {
		return nil, err
	}
	return proof, nil
}

// OpReturnByTxHash returns the OP_RETURN data of a transaction
func (c *Client) OpReturnByTxHash(ctx context.Context, txid string) (OpReturnData, error) {
	var data OpReturnData
	if err := c.getJSON(ctx, "op_return", "tx/"+url.PathEscape(txid)+"/opreturn", nil, &data); err != nil {
		return nil, err
	}
	return data, nil
}
