package utils

import "net/http"

// SetHeaders copies m into h, replacing existing values
func SetHeaders(h http.Header, m map[string]string) {
	for k, v := range m {
		h.Set(k, v)
	}
}
