package component

// AssetKind identifies a kind of asset. The core treats it as an opaque key;
// the set of valid kinds is owned by the asset catalog.
type AssetKind string

const (
	Apple  AssetKind = "apple"
	Banana AssetKind = "banana"
	Orange AssetKind = "orange"
)

// Asset is an amount of one kind of asset.
type Asset struct {
	Kind   AssetKind
	Amount uint64
}
