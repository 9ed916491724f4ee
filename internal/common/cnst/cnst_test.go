package cnst

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemeType_String(t *testing.T) {
	assert.Equal(t, "wss", SchemeWSS.String())
	assert.Equal(t, "http", SchemeHTTP.String())
}

func TestAppConstants(t *testing.T) {
	assert.Equal(t, "watson-apis-go-sdk", AppName)
	assert.Equal(t, "en-US_BroadbandModel", DefaultModel)
}
