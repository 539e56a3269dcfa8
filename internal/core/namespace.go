package core

const (
	// AssetSuffix names the GridFS bucket holding a model's unityAssets.json files.
	AssetSuffix = "stash.json_mpc"
	// RevisionSuffix names the collection holding a model's per-revision bundles.
	RevisionSuffix = "stash.unity3d"
)

// Namespace returns the collection (or bucket) name of a model's stash.
func Namespace(modelID string, suffix string) string {
	return modelID + "." + suffix
}
