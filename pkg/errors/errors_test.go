package errors

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequireNonEmpty(t *testing.T) {
	assert.NoError(t, RequireNonEmpty("a", "x", "b", "y"))

	err := RequireNonEmpty("a", "x", "session_id", "")
	var nullErr *ArgumentNullError
	assert.True(t, errors.As(err, &nullErr))
	assert.Equal(t, "session_id", nullErr.Param)
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "argument null: text", ErrArgumentNull("text").Error())
	assert.Equal(t, "invalid argument url: bad scheme", ErrInvalidArgument("url", "bad scheme").Error())
	assert.Equal(t, "AddHeader not allowed in state open", ErrInvalidState("AddHeader", "open").Error())

	svc := &ServiceResponseError{StatusCode: 404}
	assert.Equal(t, "service responded 404: Not Found", svc.Error())
	svc.Message = "session not found"
	assert.Equal(t, "service responded 404: session not found", svc.Error())
}

func TestUnwrap(t *testing.T) {
	te := &TransportError{Op: "dial", Err: io.ErrUnexpectedEOF}
	assert.ErrorIs(t, fmt.Errorf("wrapped: %w", te), io.ErrUnexpectedEOF)

	de := &DecodeError{Position: 3, Err: io.ErrUnexpectedEOF}
	assert.ErrorIs(t, de, io.ErrUnexpectedEOF)
	assert.Contains(t, de.Error(), "document 3")
	assert.NotContains(t, (&DecodeError{Err: io.EOF}).Error(), "document")
}
