package asset

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/byteutils"
	"github.com/iotaledger/hive.go/marshalutil"

	"github.com/crosschain-labs/cvmroute/packages/chainaddr"
)

var (
	// ErrUnknownVariantTag is returned when decoding a reference with a tag that is not (or no longer) assigned.
	ErrUnknownVariantTag = errors.New("unknown asset reference variant tag")

	// ErrReservedDenomPrefix is returned when a native denomination starts with a prefix reserved for another variant.
	ErrReservedDenomPrefix = errors.New("native denom uses a reserved prefix")

	// ErrEmptyDenom is returned when a native denomination is empty.
	ErrEmptyDenom = errors.New("native denom must not be empty")
)

// region VariantTag ///////////////////////////////////////////////////////////////////////////////////////////////////

// VariantTag is the first byte of every reference key and orders the variants among each other. Tags are append-only:
// new variants take the next unused value and retired tags are never handed out again.
type VariantTag uint8

const (
	// VariantTagNative is the tag of Native references.
	VariantTagNative VariantTag = iota

	// VariantTagCW20 is the tag of CW20 references.
	VariantTagCW20
)

// CW20DenomPrefix is the prefix of the denom of every CW20 reference.
const CW20DenomPrefix = "cw20:"

// reservedDenomPrefixes contains the denom prefixes of all non-native variants.
var reservedDenomPrefixes = []string{CW20DenomPrefix}

// ReservedDenomPrefixes returns the denom prefixes that a native denomination must not start with.
func ReservedDenomPrefixes() []string {
	return append([]string(nil), reservedDenomPrefixes...)
}

// Prefix returns the key prefix that all references of this variant share.
func (v VariantTag) Prefix() []byte {
	return []byte{byte(v)}
}

// String returns the name of the variant as it is used in serialized records.
func (v VariantTag) String() string {
	switch v {
	case VariantTagNative:
		return "native"
	case VariantTagCW20:
		return "cw20"
	default:
		return "VariantTag(" + strconv.Itoa(int(v)) + ")"
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region AssetReference ///////////////////////////////////////////////////////////////////////////////////////////////

// AssetReference is the representation of an asset as it exists on its native network. Exactly one variant is active
// at a time; all variants are comparable values.
type AssetReference interface {
	// VariantTag returns the tag of the variant.
	VariantTag() VariantTag

	// Denom returns the canonical denom string of the reference.
	Denom() string

	// Key returns the ordered storage key of the reference: the variant tag followed by the raw payload bytes.
	Key() []byte

	// String returns the display form of the reference, which is its Denom.
	String() string

	isAssetReference()
}

// ReferenceKey returns the ordered storage key of the given reference.
func ReferenceKey(reference AssetReference) []byte {
	return reference.Key()
}

// VariantPrefix returns the key prefix that covers all references of the given variant.
func VariantPrefix(tag VariantTag) []byte {
	return tag.Prefix()
}

// ReferenceFromKey decodes the AssetReference that produced the given key.
func ReferenceFromKey(key []byte) (reference AssetReference, err error) {
	marshalUtil := marshalutil.New(key)
	tag, err := marshalUtil.ReadByte()
	if err != nil {
		return nil, errors.Errorf("failed to parse VariantTag: %w", err)
	}
	payload := marshalUtil.ReadRemainingBytes()

	switch VariantTag(tag) {
	case VariantTagNative:
		return Native{Denomination: string(payload)}, nil
	case VariantTagCW20:
		return CW20{Contract: chainaddr.UncheckedAddr(string(payload))}, nil
	default:
		return nil, errors.Errorf("failed to parse key with tag %d: %w", tag, ErrUnknownVariantTag)
	}
}

// ReferenceFromDenom parses a denom string back into the AssetReference that produced it. Denoms with a reserved
// prefix are decoded into their variant (validating the payload), everything else is a Native reference.
func ReferenceFromDenom(denom string) (reference AssetReference, err error) {
	if contract := strings.TrimPrefix(denom, CW20DenomPrefix); contract != denom {
		addr, parseErr := chainaddr.ParseAddr(contract)
		if parseErr != nil {
			return nil, errors.Errorf("failed to parse contract of %q: %w", denom, parseErr)
		}

		return NewCW20(addr), nil
	}

	return NewNative(denom)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Native ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Native is a chain native denomination (e.g. a Cosmos-SDK bank denom), identified purely by its name.
//
// A Native literal is not validated: callers constructing one directly are responsible for not using a denom that
// starts with a reserved prefix. NewNative enforces that rule.
type Native struct {
	Denomination string `serix:"0,lengthPrefixType=uint16" json:"denom"`
}

// NewNative returns a Native reference after checking that the denom is not empty and does not collide with the
// denoms of other variants.
func NewNative(denom string) (native Native, err error) {
	if denom == "" {
		return Native{}, ErrEmptyDenom
	}
	for _, prefix := range reservedDenomPrefixes {
		if strings.HasPrefix(denom, prefix) {
			return Native{}, errors.Errorf("%q starts with %q: %w", denom, prefix, ErrReservedDenomPrefix)
		}
	}

	return Native{Denomination: denom}, nil
}

// VariantTag returns VariantTagNative.
func (n Native) VariantTag() VariantTag {
	return VariantTagNative
}

// Denom returns the denomination unchanged.
func (n Native) Denom() string {
	return n.Denomination
}

// Key returns the ordered storage key of the reference.
func (n Native) Key() []byte {
	return byteutils.ConcatBytes(VariantTagNative.Prefix(), []byte(n.Denomination))
}

// String returns the display form of the reference.
func (n Native) String() string {
	return n.Denomination
}

func (n Native) isAssetReference() {}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region CW20 /////////////////////////////////////////////////////////////////////////////////////////////////////////

// CW20 is a CosmWasm token contract, identified by the address it is deployed at.
type CW20 struct {
	Contract chainaddr.Addr `serix:"0,lengthPrefixType=uint16" json:"contract"`
}

// NewCW20 returns a CW20 reference for the given contract.
func NewCW20(contract chainaddr.Addr) CW20 {
	return CW20{Contract: contract}
}

// VariantTag returns VariantTagCW20.
func (c CW20) VariantTag() VariantTag {
	return VariantTagCW20
}

// Denom returns the contract address prefixed with "cw20:".
func (c CW20) Denom() string {
	return CW20DenomPrefix + c.Contract.String()
}

// Key returns the ordered storage key of the reference.
func (c CW20) Key() []byte {
	return byteutils.ConcatBytes(VariantTagCW20.Prefix(), c.Contract.Bytes())
}

// String returns the display form of the reference.
func (c CW20) String() string {
	return c.Denom()
}

func (c CW20) isAssetReference() {}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
