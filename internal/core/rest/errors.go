package rest

import (
	"io"
	"net/http"
	"strings"

	"github.com/amoylab/watson/internal/common/cnst"
	sdkerrors "github.com/amoylab/watson/pkg/errors"

	"github.com/tidwall/gjson"
)

// maxErrorBody bounds how much of an error response is retained
const maxErrorBody = 64 << 10

// messagePaths lists where Watson services put the human readable error
var messagePaths = []string{
	"errors.0.message",
	"error.message",
	"error",
	"errorMessage",
	"message",
	"description",
	"code_description",
}

// NewServiceError converts a non-2xx response into a ServiceResponseError
func NewServiceError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &sdkerrors.ServiceResponseError{
		StatusCode:    resp.StatusCode,
		Message:       errorMessage(body),
		TransactionID: resp.Header.Get(cnst.HeaderTransactionID),
		Body:          body,
	}
}

func errorMessage(body []byte) string {
	if gjson.ValidBytes(body) {
		for _, p := range messagePaths {
			if r := gjson.GetBytes(body, p); r.Type == gjson.String && r.Str != "" {
				return r.Str
			}
		}
	}
	return strings.TrimSpace(string(body))
}
