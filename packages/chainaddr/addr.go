package chainaddr

import (
	"strings"

	"github.com/btcsuite/btcutil/bech32"
	"github.com/cockroachdb/errors"
)

var (
	// ErrInvalidAddress is returned when a string is not a canonical bech32 address.
	ErrInvalidAddress = errors.New("invalid address")

	// ErrNotCanonical is returned when an address is valid bech32 but not in its canonical (lower case) form.
	ErrNotCanonical = errors.New("address is not in canonical form")
)

// Addr is the address of an account or contract on a Cosmos-SDK style chain. Its canonical form is the lower case
// bech32 string; the canonical byte form is the UTF-8 encoding of that string.
type Addr string

// ParseAddr validates the given bech32 string and returns it as an Addr.
func ParseAddr(address string) (addr Addr, err error) {
	if address == "" {
		return "", errors.Errorf("empty string: %w", ErrInvalidAddress)
	}
	if strings.ToLower(address) != address {
		return "", errors.Errorf("%s: %w", address, ErrNotCanonical)
	}

	_, data, err := bech32.Decode(address)
	if err != nil {
		return "", errors.Errorf("failed to decode %s (%s): %w", address, err.Error(), ErrInvalidAddress)
	}
	if _, err = bech32.ConvertBits(data, 5, 8, false); err != nil {
		return "", errors.Errorf("failed to convert payload of %s (%s): %w", address, err.Error(), ErrInvalidAddress)
	}

	return Addr(address), nil
}

// UncheckedAddr wraps the given string without validating it.
func UncheckedAddr(address string) Addr {
	return Addr(address)
}

// HRP returns the human readable part of the address (the part before the last separator).
func (a Addr) HRP() string {
	separatorIndex := strings.LastIndexByte(string(a), '1')
	if separatorIndex < 1 {
		return ""
	}

	return string(a)[:separatorIndex]
}

// Bytes returns the canonical byte form of the Addr.
func (a Addr) Bytes() []byte {
	return []byte(a)
}

// String returns the canonical string form of the Addr.
func (a Addr) String() string {
	return string(a)
}
