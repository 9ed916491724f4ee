package utils

// MergeStringMaps returns a new map holding the entries of every map in
// order; later maps win on duplicate keys
func MergeStringMaps(maps ...map[string]string) map[string]string {
	n := 0
	for _, m := range maps {
		n += len(m)
	}
	out := make(map[string]string, n)
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}
