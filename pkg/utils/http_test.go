package utils

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetHeaders(t *testing.T) {
	h := http.Header{}
	h.Add("Accept", "text/plain")
	h.Add("Accept", "text/html")

	SetHeaders(h, map[string]string{"accept": "application/json", "x-watson-learning-opt-out": "true"})
	assert.Equal(t, []string{"application/json"}, h.Values("Accept"))
	assert.Equal(t, "true", h.Get("X-Watson-Learning-Opt-Out"))

	SetHeaders(h, nil)
	assert.Len(t, h, 2)
}
