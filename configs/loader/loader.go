package loader

// ConfigLoader returns the raw key/value settings the config is built from.
type ConfigLoader interface {
	Load() (map[string]string, error)
}
