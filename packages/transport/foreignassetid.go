package transport

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/serix"
	"github.com/iotaledger/hive.go/stringify"
)

func init() {
	err := serix.DefaultAPI.RegisterTypeSettings(IBCICS20{}, serix.TypeSettings{}.WithObjectType(uint8(IBCICS20Type)))
	if err != nil {
		panic(fmt.Errorf("error registering IBCICS20 type settings: %w", err))
	}
	err = serix.DefaultAPI.RegisterInterfaceObjects((*ForeignAssetID)(nil), IBCICS20{})
	if err != nil {
		panic(fmt.Errorf("error registering IBCICS20 as ForeignAssetID interface: %w", err))
	}
}

var (
	// ErrInvalidDenomTrace is returned when a denomination trace can not be parsed.
	ErrInvalidDenomTrace = errors.New("invalid denomination trace")

	// ErrUnknownForeignAssetIDType is returned when decoding a ForeignAssetID with an unknown tag.
	ErrUnknownForeignAssetIDType = errors.New("unknown foreign asset id type")
)

// region ForeignAssetID ///////////////////////////////////////////////////////////////////////////////////////////////

// ForeignAssetIDType is the tag of the different ways a transport can locate an asset on a foreign network.
type ForeignAssetIDType uint8

const (
	// IBCICS20Type is the type of an asset that was transferred via an ICS-20 channel.
	IBCICS20Type ForeignAssetIDType = iota
)

// String returns the name of the ForeignAssetIDType as it is used in serialized records.
func (f ForeignAssetIDType) String() string {
	switch f {
	case IBCICS20Type:
		return "ibc_ics20"
	default:
		return "ForeignAssetIDType(" + strconv.Itoa(int(f)) + ")"
	}
}

// ForeignAssetID identifies an asset through the transport it arrived with. Implementations are comparable values.
type ForeignAssetID interface {
	// Type returns the tag of the variant.
	Type() ForeignAssetIDType

	// String returns a human-readable version of the ForeignAssetID.
	String() string
}

// ForeignAssetIDFromJSON decodes an externally tagged ForeignAssetID.
func ForeignAssetIDFromJSON(data []byte) (foreignAssetID ForeignAssetID, err error) {
	var tagged map[string]json.RawMessage
	if err = json.Unmarshal(data, &tagged); err != nil {
		return nil, errors.Errorf("failed to parse ForeignAssetID: %w", err)
	}
	if len(tagged) != 1 {
		return nil, errors.Errorf("expected exactly one tag but got %d: %w", len(tagged), ErrUnknownForeignAssetIDType)
	}

	for tag, body := range tagged {
		switch tag {
		case IBCICS20Type.String():
			var ibcICS20 IBCICS20
			if err = json.Unmarshal(body, &ibcICS20.Denom); err != nil {
				return nil, errors.Errorf("failed to parse %s body: %w", tag, err)
			}
			foreignAssetID = ibcICS20
		default:
			return nil, errors.Errorf("tag %q: %w", tag, ErrUnknownForeignAssetIDType)
		}
	}

	return foreignAssetID, nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region IBCICS20 /////////////////////////////////////////////////////////////////////////////////////////////////////

// IBCICS20 locates an asset by the denomination trace of an ICS-20 fungible token transfer.
type IBCICS20 struct {
	Denom PrefixedDenom `serix:"0"`
}

// NewIBCICS20 returns a new IBCICS20 for the given PrefixedDenom.
func NewIBCICS20(denom PrefixedDenom) IBCICS20 {
	return IBCICS20{Denom: denom}
}

// Type returns the IBCICS20Type.
func (i IBCICS20) Type() ForeignAssetIDType {
	return IBCICS20Type
}

// MarshalJSON returns the externally tagged JSON form of the IBCICS20.
func (i IBCICS20) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]PrefixedDenom{IBCICS20Type.String(): i.Denom})
}

// String returns a human-readable version of the IBCICS20.
func (i IBCICS20) String() string {
	return stringify.Struct("IBCICS20",
		stringify.StructField("denom", i.Denom.String()),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region PrefixedDenom ////////////////////////////////////////////////////////////////////////////////////////////////

// PrefixedDenom is a base denomination together with the port/channel hops it took to reach the current chain.
type PrefixedDenom struct {
	// TracePath contains the port/channel pairs separated by "/" (e.g. "transfer/channel-0"), empty for native tokens.
	TracePath string `serix:"0,lengthPrefixType=uint16" json:"trace_path"`

	// BaseDenom contains the denomination on the chain that issued the token.
	BaseDenom string `serix:"1,lengthPrefixType=uint16" json:"base_denom"`
}

// NewPrefixedDenom returns a new PrefixedDenom.
func NewPrefixedDenom(tracePath, baseDenom string) PrefixedDenom {
	return PrefixedDenom{
		TracePath: tracePath,
		BaseDenom: baseDenom,
	}
}

// ParsePrefixedDenom splits a full denomination path ("transfer/channel-0/uatom") into trace path and base denom.
func ParsePrefixedDenom(fullDenomPath string) (prefixedDenom PrefixedDenom, err error) {
	if strings.TrimSpace(fullDenomPath) == "" {
		return PrefixedDenom{}, errors.Errorf("empty denomination: %w", ErrInvalidDenomTrace)
	}

	segments := strings.Split(fullDenomPath, "/")
	pathLength := 0
	for pathLength+1 < len(segments)-1 && segments[pathLength] != "" && isChannelID(segments[pathLength+1]) {
		pathLength += 2
	}

	prefixedDenom = PrefixedDenom{
		TracePath: strings.Join(segments[:pathLength], "/"),
		BaseDenom: strings.Join(segments[pathLength:], "/"),
	}
	if prefixedDenom.BaseDenom == "" {
		return PrefixedDenom{}, errors.Errorf("missing base denom in %q: %w", fullDenomPath, ErrInvalidDenomTrace)
	}

	return prefixedDenom, nil
}

// IsNative returns true if the token did not traverse any channel.
func (p PrefixedDenom) IsNative() bool {
	return p.TracePath == ""
}

// IBCDenom returns the voucher denomination ("ibc/{hash}") under which the token is held on the current chain.
func (p PrefixedDenom) IBCDenom() string {
	if p.IsNative() {
		return p.BaseDenom
	}

	hash := sha256.Sum256([]byte(p.String()))

	return "ibc/" + strings.ToUpper(hex.EncodeToString(hash[:]))
}

// String returns the full denomination path.
func (p PrefixedDenom) String() string {
	if p.IsNative() {
		return p.BaseDenom
	}

	return p.TracePath + "/" + p.BaseDenom
}

// isChannelID checks if the given identifier has the shape of a channel identifier ("channel-{n}").
func isChannelID(identifier string) bool {
	sequence := strings.TrimPrefix(identifier, "channel-")
	if sequence == identifier || sequence == "" {
		return false
	}

	_, err := strconv.ParseUint(sequence, 10, 64)

	return err == nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
