package woc

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
)

// Network is one of the three WhatsOnChain deployments.
type Network string

const (
	NetworkMain Network = "main"
	NetworkTest Network = "test"
	NetworkSTN  Network = "stn" // scaling test network
)

// ParseNetwork maps a network alias onto its canonical token.
// "main", "mainnet" and "livenet" select main; "test" and "testnet" select
// test; every other value selects stn. Matching is case-sensitive.
func ParseNetwork(s string) Network {
	switch s {
	case "main", "mainnet", "livenet":
		return NetworkMain
	case "test", "testnet":
		return NetworkTest
	default:
		return NetworkSTN
	}
}

func (n Network) String() string {
	return string(n)
}

// authPrefix is the scope prefix of the Authorization header value.
func (n Network) authPrefix() string {
	switch n {
	case NetworkMain:
		return "mainnet"
	case NetworkTest:
		return "testnet"
	default:
		return "stn"
	}
}

// Params returns the chain parameters used to validate addresses.
// The scaling test network shares the testnet address encoding.
func (n Network) Params() *chaincfg.Params {
	if n == NetworkMain {
		return &chaincfg.MainNetParams
	}
	return &chaincfg.TestNet3Params
}

// Profile selects one of the two endpoint sets the service has exposed.
type Profile string

const (
	// ProfileCurrent authenticates with a network-scoped Authorization header.
	ProfileCurrent Profile = "current"

	// ProfileLegacy authenticates with a flat woc-api-key header and adds
	// bulk broadcast, fee quotes and receipt downloads.
	ProfileLegacy Profile = "legacy"
)

// ParseProfile parses a profile name. The empty string selects ProfileCurrent.
func ParseProfile(s string) (Profile, error) {
	switch Profile(s) {
	case "", ProfileCurrent:
		return ProfileCurrent, nil
	case ProfileLegacy:
		return ProfileLegacy, nil
	default:
		return "", fmt.Errorf("unknown profile %q: must be %q or %q", s, ProfileCurrent, ProfileLegacy)
	}
}
