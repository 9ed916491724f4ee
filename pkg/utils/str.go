package utils

// FirstNonEmpty returns the first non-empty value, or "" when all are empty
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
