package component

// AssetChecker answers whether an asset referenced by content exists.
// It is the engine's only external I/O collaborator, used by the math
// SVG filename check; implementations must be safe for concurrent use.
type AssetChecker interface {
	IsFile(entityType, entityID, path string) bool
}

// AssetCheckerFunc adapts a function to the AssetChecker interface.
type AssetCheckerFunc func(entityType, entityID, path string) bool

// IsFile calls f.
func (f AssetCheckerFunc) IsFile(entityType, entityID, path string) bool {
	return f(entityType, entityID, path)
}
