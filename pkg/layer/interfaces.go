package layer

// DefaultLayerStore persists the default layer across sessions.
type DefaultLayerStore interface {
	GetDefaultLayer() (ID, error)
	SetDefaultLayer(layer ID) error
}
