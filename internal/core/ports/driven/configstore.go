package driven

// ConfigStore persists settings under flat dotted keys such as
// "llm.model". Values keep the type they were decoded or stored with,
// so callers convert them.
type ConfigStore interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (any, bool)

	// Set stores value and persists it before returning.
	Set(key string, value any) error
}
