package woc

import (
	"encoding/hex"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/go-playground/validator/v10"

	werrors "github.com/olgasafonova/whatsonchain-mcp-server/internal/errors"
)

// MaxBulkItems is the largest batch the bulk endpoints accept
const MaxBulkItems = 20

var argsValidator = newArgsValidator()

func newArgsValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("hash256", func(fl validator.FieldLevel) bool {
		return ValidateHash("", fl.Field().String()) == nil
	})
	_ = v.RegisterValidation("hexdata", func(fl validator.FieldLevel) bool {
		return ValidateHex("", fl.Field().String()) == nil
	})
	return v
}

// ValidateHash checks a 64-character hex block hash, txid or script hash.
func ValidateHash(field, s string) error {
	if s == "" {
		return werrors.NewValidationError(field, "", "is required")
	}
	if len(s) != chainhash.MaxHashStringSize {
		return werrors.NewValidationError(field, s, fmt.Sprintf("must be %d hex characters", chainhash.MaxHashStringSize))
	}
	if _, err := chainhash.NewHashFromStr(s); err != nil {
		return werrors.NewValidationError(field, s, "must be hex")
	}
	return nil
}

// ValidateHex checks non-empty even-length hex such as a raw transaction.
// Whether the bytes form a valid transaction is left to the server.
func ValidateHex(field, s string) error {
	if s == "" {
		return werrors.NewValidationError(field, "", "is required")
	}
	if _, err := hex.DecodeString(s); err != nil {
		return werrors.NewValidationError(field, "", "must be an even number of hex characters")
	}
	return nil
}

// ValidateAddress checks a P2PKH or P2SH address encoded for network.
func ValidateAddress(network Network, field, address string) error {
	if address == "" {
		return werrors.NewValidationError(field, "", "is required")
	}

	params := network.Params()
	addr, err := btcutil.DecodeAddress(address, params)
	if err != nil {
		return werrors.NewValidationError(field, address, "not a valid address")
	}

	switch addr.(type) {
	case *btcutil.AddressPubKeyHash, *btcutil.AddressScriptHash:
	default:
		return werrors.NewValidationError(field, address, "must be a P2PKH or P2SH address")
	}

	if !addr.IsForNet(params) {
		return werrors.NewValidationError(field, address, fmt.Sprintf("is not an address for the %s network", network))
	}
	return nil
}

// ValidateBulk checks the size of a bulk request and each of its items.
func ValidateBulk(field string, items []string, check func(field, item string) error) error {
	if len(items) == 0 {
		return werrors.NewValidationError(field, "", "at least one entry is required")
	}
	if len(items) > MaxBulkItems {
		return werrors.NewValidationError(field, "", fmt.Sprintf("at most %d entries are allowed, got %d", MaxBulkItems, len(items)))
	}
	for i, item := range items {
		if err := check(fmt.Sprintf("%s[%d]", field, i), item); err != nil {
			return err
		}
	}
	return nil
}

// validateArgs runs struct tag validation and reports the first failure as
// a ValidationError named by its JSON field.
func validateArgs(args any) error {
	err := argsValidator.Struct(args)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return werrors.NewValidationError("", "", err.Error())
	}

	fe := fieldErrs[0]
	value := fmt.Sprint(fe.Value())
	if len(value) > 80 {
		value = ""
	}
	return werrors.NewValidationError(fe.Field(), value, validationMessage(fe))
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "hash256":
		return "must be a 64-character hex hash"
	case "hexdata":
		return "must be an even number of hex characters"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	case "gtefield":
		return "must not be before " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}
