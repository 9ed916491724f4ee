package accumulator

import (
	"encoding/json"
	"errors"
	"io"

	sdkerrors "github.com/amoylab/watson/pkg/errors"
)

// DecodeDocuments decodes back-to-back JSON values from r. Values may follow
// each other with or without whitespace. When document N is malformed the
// N-1 values decoded before it are returned with a DecodeError at position N;
// nothing after it is read.
func DecodeDocuments[T any](r io.Reader) ([]T, error) {
	dec := json.NewDecoder(r)
	out := make([]T, 0)
	for pos := 1; ; pos++ {
		var v T
		if err := dec.Decode(&v); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, &sdkerrors.DecodeError{Position: pos, Err: err}
		}
		out = append(out, v)
	}
}
