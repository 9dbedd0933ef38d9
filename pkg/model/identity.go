package model

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Identity is the primary identity block of an artifact. A bare contract
// address is the baseline; a chain id turns it into a chain-qualified account
// reference ("eip155:1" + address yields a CAIP-10 identifier).
type Identity struct {
	ChainID         string
	ContractAddress string
}

// ChainQualified reports whether a chain id accompanies the address.
func (id Identity) ChainQualified() bool {
	return strings.TrimSpace(id.ChainID) != ""
}

// Address returns the contract address, normalised to its EIP-55 checksum
// form when it is a 20-byte hex address. Anything else is returned trimmed but
// otherwise untouched.
func (id Identity) Address() string {
	address := strings.TrimSpace(id.ContractAddress)
	if common.IsHexAddress(address) {
		return common.HexToAddress(address).Hex()
	}
	return address
}

// Display renders the identity line.
func (id Identity) Display() string {
	address := id.Address()
	if !id.ChainQualified() {
		return address
	}
	return strings.TrimSpace(id.ChainID) + ":" + address
}

// Label names the identity line for the current representation.
func (id Identity) Label() string {
	if id.ChainQualified() {
		return "Chain Address"
	}
	return "Contract Address"
}
