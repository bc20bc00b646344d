package cvm

import (
	"encoding/binary"
	"strconv"

	"github.com/cockroachdb/errors"
)

// ErrInvalidLength is returned when a serialized identifier does not have the expected size.
var ErrInvalidLength = errors.New("invalid identifier length")

// region AssetID //////////////////////////////////////////////////////////////////////////////////////////////////////

// AssetIDLength contains the byte length of a serialized AssetID.
const AssetIDLength = 8

// AssetID is the system wide identifier of a fungible asset. It is independent of the network the asset lives on and
// is never reused for a different asset.
type AssetID uint64

// AssetIDFromBytes unmarshals an AssetID from a sequence of bytes.
func AssetIDFromBytes(data []byte) (assetID AssetID, consumedBytes int, err error) {
	if len(data) < AssetIDLength {
		return 0, 0, errors.Errorf("failed to parse AssetID (%d bytes): %w", len(data), ErrInvalidLength)
	}

	return AssetID(binary.BigEndian.Uint64(data)), AssetIDLength, nil
}

// Bytes returns the big endian representation of the AssetID (byte order equals numeric order).
func (a AssetID) Bytes() []byte {
	return binary.BigEndian.AppendUint64(make([]byte, 0, AssetIDLength), uint64(a))
}

// String returns a human-readable version of the AssetID.
func (a AssetID) String() string {
	return "AssetID(" + strconv.FormatUint(uint64(a), 10) + ")"
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region NetworkID ////////////////////////////////////////////////////////////////////////////////////////////////////

// NetworkIDLength contains the byte length of a serialized NetworkID.
const NetworkIDLength = 4

// NetworkID identifies a blockchain network.
type NetworkID uint32

// NetworkIDFromBytes unmarshals a NetworkID from a sequence of bytes.
func NetworkIDFromBytes(data []byte) (networkID NetworkID, consumedBytes int, err error) {
	if len(data) < NetworkIDLength {
		return 0, 0, errors.Errorf("failed to parse NetworkID (%d bytes): %w", len(data), ErrInvalidLength)
	}

	return NetworkID(binary.BigEndian.Uint32(data)), NetworkIDLength, nil
}

// Bytes returns the big endian representation of the NetworkID.
func (n NetworkID) Bytes() []byte {
	return binary.BigEndian.AppendUint32(make([]byte, 0, NetworkIDLength), uint32(n))
}

// String returns a human-readable version of the NetworkID.
func (n NetworkID) String() string {
	return "NetworkID(" + strconv.FormatUint(uint64(n), 10) + ")"
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
