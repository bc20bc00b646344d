package asset

import (
	"fmt"

	"github.com/iotaledger/hive.go/serix"
)

// The serix object type of every variant equals its VariantTag.
func init() {
	err := serix.DefaultAPI.RegisterTypeSettings(Native{}, serix.TypeSettings{}.WithObjectType(uint8(VariantTagNative)))
	if err != nil {
		panic(fmt.Errorf("error registering Native type settings: %w", err))
	}
	err = serix.DefaultAPI.RegisterTypeSettings(CW20{}, serix.TypeSettings{}.WithObjectType(uint8(VariantTagCW20)))
	if err != nil {
		panic(fmt.Errorf("error registering CW20 type settings: %w", err))
	}
	err = serix.DefaultAPI.RegisterInterfaceObjects((*AssetReference)(nil), Native{}, CW20{})
	if err != nil {
		panic(fmt.Errorf("error registering AssetReference interface implementations: %w", err))
	}
}
