package woc

import (
	"errors"
	"strings"
	"testing"

	werrors "github.com/olgasafonova/whatsonchain-mcp-server/internal/errors"
)

const (
	mainP2PKH = "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"
	mainP2SH  = "3J98t1WpEZ73CNmQviecrnyiWrnqRhWNLy"
	testP2PKH = "mipcBbFg9gMiCh81Kj8tqqdgoZub1ZJRfn"
	testP2SH  = "2MzQwSSnBHWHqSAqtTVQ6v47XtaisrJa1Vc"
)

func TestValidateHash(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid txid", testTxID, false},
		{"valid block hash", testBlockHash, false},
		{"uppercase hex", strings.ToUpper(testTxID), false},
		{"empty", "", true},
		{"too short", testTxID[:63], true},
		{"too long", testTxID + "0", true},
		{"non-hex", strings.Repeat("z", 64), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHash("txid", tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateHash(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !werrors.IsValidation(err) {
				t.Errorf("expected ValidationError, got %T", err)
			}
		})
	}
}

func TestValidateHex(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "0100000001", false},
		{"empty", "", true},
		{"odd length", "010", true},
		{"non-hex", "01zz", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHex("txhex", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHex(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateAddress(t *testing.T) {
	tests := []struct {
		name    string
		network Network
		address string
		wantErr bool
	}{
		{"mainnet p2pkh", NetworkMain, mainP2PKH, false},
		{"mainnet p2sh", NetworkMain, mainP2SH, false},
		{"testnet p2pkh", NetworkTest, testP2PKH, false},
		{"testnet p2sh", NetworkTest, testP2SH, false},
		{"stn uses testnet encoding", NetworkSTN, testP2PKH, false},
		{"testnet address on mainnet", NetworkMain, testP2PKH, true},
		{"mainnet address on testnet", NetworkTest, mainP2PKH, true},
		{"bad checksum", NetworkMain, mainP2PKH[:len(mainP2PKH)-1] + "b", true},
		{"segwit not supported", NetworkMain, "bc1qar0srrr7xfkvy5l643lydnw9re59gtzzwf5mdq", true},
		{"empty", NetworkMain, "", true},
		{"garbage", NetworkMain, "not-an-address", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAddress(tt.network, "address", tt.address)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateAddress(%s, %q) error = %v, wantErr %v", tt.network, tt.address, err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var ve *werrors.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			if ve.Field != "address" {
				t.Errorf("Field = %q, want address", ve.Field)
			}
		})
	}
}

func TestValidateBulk(t *testing.T) {
	many := make([]string, MaxBulkItems+1)
	for i := range many {
		many[i] = testTxID
	}

	tests := []struct {
		name      string
		items     []string
		wantErr   bool
		wantField string
	}{
		{"single", []string{testTxID}, false, ""},
		{"at limit", many[:MaxBulkItems], false, ""},
		{"empty", nil, true, "txids"},
		{"over limit", many, true, "txids"},
		{"bad item reports index", []string{testTxID, "bad"}, true, "txids[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBulk("txids", tt.items, ValidateHash)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateBulk error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var ve *werrors.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", ve.Field, tt.wantField)
			}
		})
	}
}

func TestValidateArgs(t *testing.T) {
	height := int64(-1)

	tests := []struct {
		name        string
		args        any
		wantField   string
		wantValue   string
		wantMessage string
	}{
		{
			name:        "required field named by json tag",
			args:        BlockPageArgs{Page: 1},
			wantField:   "hash",
			wantMessage: "is required",
		},
		{
			name:        "hash format",
			args:        GetTxArgs{TxID: "abc"},
			wantField:   "txid",
			wantValue:   "abc",
			wantMessage: "must be a 64-character hex hash",
		},
		{
			name:        "hex payload",
			args:        BroadcastArgs{TxHex: "xyz"},
			wantField:   "txhex",
			wantValue:   "xyz",
			wantMessage: "must be an even number of hex characters",
		},
		{
			name:        "minimum",
			args:        BlockPageArgs{Hash: testBlockHash, Page: 0},
			wantField:   "page",
			wantValue:   "0",
			wantMessage: "must be at least 1",
		},
		{
			name:        "negative optional height",
			args:        GetBlockArgs{Height: &height},
			wantField:   "height",
			wantMessage: "must be at least 0",
		},
		{
			name:        "maximum",
			args:        HistoryArgs{Address: mainP2PKH, Limit: 5000},
			wantField:   "limit",
			wantValue:   "5000",
			wantMessage: "must be at most 1000",
		},
		{
			name:        "oneof",
			args:        MinerStatsArgs{Days: 7},
			wantField:   "days",
			wantValue:   "7",
			wantMessage: "must be one of 1 30",
		},
		{
			name:        "range order",
			args:        HistoricalRateArgs{From: 1700086400, To: 1700000000},
			wantField:   "to",
			wantValue:   "1700000000",
			wantMessage: "must not be before From",
		},
		{
			name:        "long value blanked",
			args:        SearchArgs{Query: strings.Repeat("a", 201)},
			wantField:   "query",
			wantMessage: "must be at most 200",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateArgs(tt.args)
			if err == nil {
				t.Fatal("expected validation error")
			}
			var ve *werrors.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", ve.Field, tt.wantField)
			}
			if tt.wantValue != "" && ve.Value != tt.wantValue {
				t.Errorf("Value = %q, want %q", ve.Value, tt.wantValue)
			}
			if ve.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", ve.Message, tt.wantMessage)
			}
		})
	}
}

func TestValidateArgs_Valid(t *testing.T) {
	height := int64(100)
	valid := []any{
		GetBlockArgs{Hash: testBlockHash},
		GetBlockArgs{Height: &height},
		GetBlockArgs{},
		BlockPageArgs{Hash: testBlockHash, Page: 3},
		BroadcastArgs{TxHex: "0100"},
		HistoryArgs{Address: mainP2PKH},
		MinerStatsArgs{},
		MinerStatsArgs{Days: 30},
		HistoricalRateArgs{From: 1700000000, To: 1700000000},
		StatusArgs{},
	}

	for _, args := range valid {
		if err := validateArgs(args); err != nil {
			t.Errorf("validateArgs(%+v) = %v, want nil", args, err)
		}
	}
}
