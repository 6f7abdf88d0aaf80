// internal/platform/registry/helpers.go
package registry

// Type-safe configuration extraction helpers for backend factories.
// These functions eliminate repetitive nil checks and type assertions when
// extracting custom configuration values from the cfg.Custom map.

// GetStringConfig extracts a string value from custom config map with a default fallback.
func GetStringConfig(custom map[string]interface{}, key, defaultValue string) string {
	if custom == nil {
		return defaultValue
	}
	if val, ok := custom[key].(string); ok && val != "" {
		return val
	}
	return defaultValue
}

// GetIntConfig extracts an int value from custom config map with a default fallback.
// Handles both int and float64 (YAML/JSON numbers may decode as float64).
func GetIntConfig(custom map[string]interface{}, key string, defaultValue int) int {
	if custom == nil {
		return defaultValue
	}
	if val, ok := custom[key].(int); ok {
		return val
	}
	if val, ok := custom[key].(float64); ok {
		return int(val)
	}
	return defaultValue
}

// GetBoolConfig extracts a bool value from custom config map with a default fallback.
func GetBoolConfig(custom map[string]interface{}, key string, defaultValue bool) bool {
	if custom == nil {
		return defaultValue
	}
	if val, ok := custom[key].(bool); ok {
		return val
	}
	return defaultValue
}

// GetStringSliceConfig extracts a []string from custom config, tolerating the
// []interface{} shape produced by YAML decoding.
func GetStringSliceConfig(custom map[string]interface{}, key string) []string {
	if custom == nil {
		return nil
	}
	if val, ok := custom[key].([]string); ok {
		return val
	}
	if raw, ok := custom[key].([]interface{}); ok {
		out := make([]string, 0, len(raw))
		for _, v := range raw {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
