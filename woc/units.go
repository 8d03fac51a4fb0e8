package woc

import "github.com/shopspring/decimal"

// SatoshisPerBSV is the number of satoshis in one BSV
const SatoshisPerBSV = 100_000_000

// SatoshisToBSV converts a satoshi amount to BSV without float rounding
func SatoshisToBSV(sats int64) decimal.Decimal {
	return decimal.New(sats, -8)
}

// FormatBSV renders a satoshi amount as a BSV string with 8 decimals
func FormatBSV(sats int64) string {
	return SatoshisToBSV(sats).StringFixed(8)
}

// BSVToSatoshis converts a BSV amount string to satoshis. Digits beyond
// the eighth decimal are truncated.
func BSVToSatoshis(bsv string) (int64, error) {
	d, err := decimal.NewFromString(bsv)
	if err != nil {
		return 0, err
	}
	return d.Shift(8).Truncate(0).IntPart(), nil
}
