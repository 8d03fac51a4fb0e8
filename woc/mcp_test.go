package woc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	werrors "github.com/olgasafonova/whatsonchain-mcp-server/internal/errors"
)

// jsonRouter answers each path with the given body. Unknown paths get a 404.
func jsonRouter(routes map[string]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(body))
	}
}

func TestGetBlockMCP(t *testing.T) {
	block := `{"hash":"` + testBlockHash + `","height":1000,"txcount":1,"tx":["` + testTxID + `"]}`
	client, _ := newTestServer(t, jsonRouter(map[string]string{
		"/v1/bsv/main/block/hash/" + testBlockHash: block,
		"/v1/bsv/main/block/height/1000":           block,
	}))
	height := int64(1000)

	t.Run("by hash strips transactions", func(t *testing.T) {
		res, err := client.GetBlockMCP(context.Background(), GetBlockArgs{Hash: testBlockHash})
		if err != nil {
			t.Fatalf("GetBlockMCP failed: %v", err)
		}
		if res.Block.Height != 1000 {
			t.Errorf("Height = %d, want 1000", res.Block.Height)
		}
		if res.Block.Tx != nil {
			t.Errorf("Tx should be stripped, got %v", res.Block.Tx)
		}
	})

	t.Run("by height keeps transactions", func(t *testing.T) {
		res, err := client.GetBlockMCP(context.Background(), GetBlockArgs{Height: &height, IncludeTxs: true})
		if err != nil {
			t.Fatalf("GetBlockMCP failed: %v", err)
		}
		if len(res.Block.Tx) != 1 || res.Block.Tx[0] != testTxID {
			t.Errorf("Tx = %v, want [%s]", res.Block.Tx, testTxID)
		}
	})

	t.Run("neither hash nor height", func(t *testing.T) {
		_, err := client.GetBlockMCP(context.Background(), GetBlockArgs{})
		if !werrors.IsValidation(err) {
			t.Errorf("expected ValidationError, got %v", err)
		}
	})

	t.Run("both hash and height", func(t *testing.T) {
		_, err := client.GetBlockMCP(context.Background(), GetBlockArgs{Hash: testBlockHash, Height: &height})
		if !werrors.IsValidation(err) {
			t.Errorf("expected ValidationError, got %v", err)
		}
	})

	t.Run("unknown height is not found", func(t *testing.T) {
		missing := int64(99999999)
		_, err := client.GetBlockMCP(context.Background(), GetBlockArgs{Height: &missing})
		if !werrors.IsNotFound(err) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
		want := "block not found on main network: 99999999"
		if err.Error() != want {
			t.Errorf("error = %q, want %q", err.Error(), want)
		}
	})
}

func TestGetTxMCP_StripsHex(t *testing.T) {
	client, _ := newTestServer(t, jsonRouter(map[string]string{
		"/v1/bsv/main/tx/hash/" + testTxID: `{"txid":"` + testTxID + `","hex":"0100"}`,
	}))

	res, err := client.GetTxMCP(context.Background(), GetTxArgs{TxID: testTxID})
	if err != nil {
		t.Fatalf("GetTxMCP failed: %v", err)
	}
	if res.Tx.Hex != "" {
		t.Errorf("Hex should be stripped, got %q", res.Tx.Hex)
	}

	res, err = client.GetTxMCP(context.Background(), GetTxArgs{TxID: testTxID, IncludeHex: true})
	if err != nil {
		t.Fatalf("GetTxMCP failed: %v", err)
	}
	if res.Tx.Hex != "0100" {
		t.Errorf("Hex = %q, want 0100", res.Tx.Hex)
	}
}

func TestMCP_ValidationPrecedesRequest(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{"tx bad txid", func() error { _, err := client.GetTxMCP(ctx, GetTxArgs{TxID: "nothex"}); return err }},
		{"broadcast bad hex", func() error { _, err := client.BroadcastMCP(ctx, BroadcastArgs{TxHex: "abc"}); return err }},
		{"balance testnet address", func() error {
			_, err := client.BalanceMCP(ctx, AddressArgs{Address: testP2PKH})
			return err
		}},
		{"history limit", func() error {
			_, err := client.HistoryMCP(ctx, HistoryArgs{Address: mainP2PKH, Limit: 1001})
			return err
		}},
		{"bulk status empty", func() error { _, err := client.BulkTxStatusMCP(ctx, BulkTxStatusArgs{}); return err }},
		{"bulk balance bad entry", func() error {
			_, err := client.BulkBalanceMCP(ctx, BulkAddressArgs{Addresses: []string{mainP2PKH, "junk"}})
			return err
		}},
		{"miner days", func() error { _, err := client.MinerStatsMCP(ctx, MinerStatsArgs{Days: 2}); return err }},
		{"script hash", func() error { _, err := client.ScriptUTXOsMCP(ctx, ScriptArgs{ScriptHash: "00"}); return err }},
		{"search empty", func() error { _, err := client.SearchMCP(ctx, SearchArgs{}); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !werrors.IsValidation(err) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}

	if n := calls.Load(); n != 0 {
		t.Errorf("invalid input reached the server %d times", n)
	}
}

func TestBalanceMCP(t *testing.T) {
	client, _ := newTestServer(t, jsonRouter(map[string]string{
		"/v1/bsv/main/address/" + mainP2PKH + "/balance": `{"confirmed":150000000,"unconfirmed":-2500}`,
	}))

	res, err := client.BalanceMCP(context.Background(), AddressArgs{Address: mainP2PKH})
	if err != nil {
		t.Fatalf("BalanceMCP failed: %v", err)
	}

	if res.ConfirmedSats != 150000000 || res.UnconfirmedSats != -2500 {
		t.Errorf("sats = %d/%d", res.ConfirmedSats, res.UnconfirmedSats)
	}
	if res.ConfirmedBSV != "1.50000000" {
		t.Errorf("ConfirmedBSV = %q, want 1.50000000", res.ConfirmedBSV)
	}
	if res.UnconfirmedBSV != "-0.00002500" {
		t.Errorf("UnconfirmedBSV = %q, want -0.00002500", res.UnconfirmedBSV)
	}
	if res.TotalBSV != "1.49997500" {
		t.Errorf("TotalBSV = %q, want 1.49997500", res.TotalBSV)
	}
}

func TestBulkBalanceMCP_KeepsPerEntryErrors(t *testing.T) {
	client, _ := newTestServer(t, jsonRouter(map[string]string{
		"/v1/bsv/main/address/balance": `[
			{"address":"` + mainP2PKH + `","balance":{"confirmed":1000,"unconfirmed":0}},
			{"address":"` + mainP2SH + `","balance":{"confirmed":0,"unconfirmed":0},"error":"lookup failed"}
		]`,
	}))

	res, err := client.BulkBalanceMCP(context.Background(), BulkAddressArgs{Addresses: []string{mainP2PKH, mainP2SH}})
	if err != nil {
		t.Fatalf("BulkBalanceMCP failed: %v", err)
	}
	if len(res.Balances) != 2 {
		t.Fatalf("got %d balances, want 2", len(res.Balances))
	}
	if res.Balances[0].TotalBSV != "0.00001000" {
		t.Errorf("TotalBSV = %q, want 0.00001000", res.Balances[0].TotalBSV)
	}
	if res.Balances[1].Error != "lookup failed" {
		t.Errorf("Error = %q, want lookup failed", res.Balances[1].Error)
	}
}

func TestHistoryMCP_Truncation(t *testing.T) {
	entries := make([]string, 0, 150)
	for i := range 150 {
		entries = append(entries, fmt.Sprintf(`{"tx_hash":"%064x","height":%d}`, i, i+1))
	}
	client, _ := newTestServer(t, jsonRouter(map[string]string{
		"/v1/bsv/main/address/" + mainP2PKH + "/history": "[" + strings.Join(entries, ",") + "]",
	}))

	tests := []struct {
		name          string
		limit         int
		wantLen       int
		wantTruncated bool
		wantFirst     int64
	}{
		{"default limit", 0, DefaultHistoryLimit, true, 51},
		{"explicit limit", 10, 10, true, 141},
		{"limit above total", 500, 150, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := client.HistoryMCP(context.Background(), HistoryArgs{Address: mainP2PKH, Limit: tt.limit})
			if err != nil {
				t.Fatalf("HistoryMCP failed: %v", err)
			}
			if res.Total != 150 {
				t.Errorf("Total = %d, want 150", res.Total)
			}
			if len(res.Transactions) != tt.wantLen {
				t.Errorf("got %d entries, want %d", len(res.Transactions), tt.wantLen)
			}
			if res.Truncated != tt.wantTruncated {
				t.Errorf("Truncated = %v, want %v", res.Truncated, tt.wantTruncated)
			}
			if res.Transactions[0].Height != tt.wantFirst {
				t.Errorf("first height = %d, want %d", res.Transactions[0].Height, tt.wantFirst)
			}
			if last := res.Transactions[len(res.Transactions)-1]; last.Height != 150 {
				t.Errorf("last height = %d, want 150", last.Height)
			}
		})
	}
}

func TestUTXOsMCP_Totals(t *testing.T) {
	client, _ := newTestServer(t, jsonRouter(map[string]string{
		"/v1/bsv/main/address/" + mainP2PKH + "/unspent": `[
			{"height":100,"tx_pos":0,"tx_hash":"` + testTxID + `","value":546},
			{"height":0,"tx_pos":1,"tx_hash":"` + testTxID + `","value":100000000}
		]`,
		"/v1/bsv/main/script/" + testScript + "/unspent": `[]`,
	}))

	res, err := client.UTXOsMCP(context.Background(), AddressArgs{Address: mainP2PKH})
	if err != nil {
		t.Fatalf("UTXOsMCP failed: %v", err)
	}
	if res.Count != 2 || res.TotalSats != 100000546 {
		t.Errorf("Count = %d, TotalSats = %d", res.Count, res.TotalSats)
	}
	if res.TotalBSV != "1.00000546" {
		t.Errorf("TotalBSV = %q, want 1.00000546", res.TotalBSV)
	}

	empty, err := client.ScriptUTXOsMCP(context.Background(), ScriptArgs{ScriptHash: testScript})
	if err != nil {
		t.Fatalf("ScriptUTXOsMCP failed: %v", err)
	}
	if empty.UTXOs == nil || empty.Count != 0 || empty.TotalBSV != "0.00000000" {
		t.Errorf("unexpected empty result: %+v", empty)
	}

	// An empty list must encode as [] so structured output stays an array
	data, _ := json.Marshal(empty)
	if !strings.Contains(string(data), `"utxos":[]`) {
		t.Errorf("encoded result = %s", data)
	}
}

func TestRawTxMCP(t *testing.T) {
	client, _ := newTestServer(t, jsonRouter(map[string]string{
		"/v1/bsv/main/tx/" + testTxID + "/hex":       "0100000001",
		"/v1/bsv/main/tx/" + testTxID + "/out/0/hex": "2202",
	}))

	res, err := client.RawTxMCP(context.Background(), RawTxArgs{TxID: testTxID})
	if err != nil {
		t.Fatalf("RawTxMCP failed: %v", err)
	}
	if res.Hex != "0100000001" || res.Bytes != 5 {
		t.Errorf("Hex = %q, Bytes = %d", res.Hex, res.Bytes)
	}

	idx := 0
	res, err = client.RawTxMCP(context.Background(), RawTxArgs{TxID: testTxID, OutputIndex: &idx})
	if err != nil {
		t.Fatalf("RawTxMCP output failed: %v", err)
	}
	if res.Hex != "2202" || res.OutputIndex == nil || *res.OutputIndex != 0 {
		t.Errorf("unexpected output result: %+v", res)
	}
}

func TestMinerStatsMCP_DefaultsToOneDay(t *testing.T) {
	var gotQuery, gotPath string
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[{"name":"TAAL","count":42}]`))
	})

	res, err := client.MinerStatsMCP(context.Background(), MinerStatsArgs{Summary: true})
	if err != nil {
		t.Fatalf("MinerStatsMCP failed: %v", err)
	}
	if res.Days != 1 || gotQuery != "days=1" {
		t.Errorf("Days = %d, query = %q", res.Days, gotQuery)
	}
	if gotPath != "/v1/bsv/main/miner/summary/stats" {
		t.Errorf("path = %s", gotPath)
	}
	stats, ok := res.Stats.([]any)
	if !ok || len(stats) != 1 {
		t.Errorf("Stats = %#v, want one decoded entry", res.Stats)
	}
}

func TestStatusMCP(t *testing.T) {
	client, _ := newTestServer(t, jsonRouter(map[string]string{
		"/v1/bsv/main/woc": "Whats On Chain",
	}))

	res, err := client.StatusMCP(context.Background(), StatusArgs{})
	if err != nil {
		t.Fatalf("StatusMCP failed: %v", err)
	}
	if !res.Online || res.Network != "main" {
		t.Errorf("unexpected status: %+v", res)
	}
}

func TestFeeQuotesMCP_LegacyOnly(t *testing.T) {
	client, _ := newTestServer(t, jsonRouter(map[string]string{}))

	_, err := client.FeeQuotesMCP(context.Background(), FeeQuotesArgs{})
	if !IsRequestSetupError(err) {
		t.Errorf("expected RequestSetupError on the current profile, got %v", err)
	}
}

func TestRawToAny(t *testing.T) {
	tests := []struct {
		name string
		raw  json.RawMessage
		want any
	}{
		{"empty", nil, nil},
		{"object", json.RawMessage(`{"a":1}`), map[string]any{"a": float64(1)}},
		{"not json", json.RawMessage(`plain`), "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rawToAny(tt.raw)
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Errorf("rawToAny(%s) = %#v, want %#v", tt.raw, got, tt.want)
			}
		})
	}
}
