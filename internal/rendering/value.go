package rendering

// Get walks nested maps by key path, returning nil when any hop is missing.
func Get(data map[string]any, keys ...string) any {
	var current any = data
	for _, key := range keys {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = m[key]
		if !ok {
			return nil
		}
	}
	return current
}

// GetString returns the string at the key path, or fallback.
func GetString(data map[string]any, fallback string, keys ...string) string {
	if s, ok := Get(data, keys...).(string); ok {
		return s
	}
	return fallback
}

// GetFloat returns the number at the key path, or fallback. JSON numbers
// decode as float64.
func GetFloat(data map[string]any, fallback float64, keys ...string) float64 {
	switch v := Get(data, keys...).(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return fallback
}

// GetInt returns the number at the key path truncated to int, or fallback.
func GetInt(data map[string]any, fallback int, keys ...string) int {
	switch v := Get(data, keys...).(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	}
	return fallback
}

// GetBool returns the bool at the key path, or fallback. Numeric 0/1 flags
// from upstream APIs count too.
func GetBool(data map[string]any, fallback bool, keys ...string) bool {
	switch v := Get(data, keys...).(type) {
	case bool:
		return v
	case float64:
		return v != 0
	}
	return fallback
}

// GetSlice returns the array at the key path, or nil.
func GetSlice(data map[string]any, keys ...string) []any {
	if s, ok := Get(data, keys...).([]any); ok {
		return s
	}
	return nil
}

// GetMap returns the object at the key path, or nil.
func GetMap(data map[string]any, keys ...string) map[string]any {
	if m, ok := Get(data, keys...).(map[string]any); ok {
		return m
	}
	return nil
}

// GetFloatPtr returns a pointer to the number at the key path, or nil when
// absent. Engines that distinguish missing from zero use this.
func GetFloatPtr(data map[string]any, keys ...string) *float64 {
	if v, ok := Get(data, keys...).(float64); ok {
		return &v
	}
	return nil
}
