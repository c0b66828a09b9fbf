package state

import (
	"errors"
	"strings"

	"github.com/five82/folio/internal/placeholder"
)

// errorMessage picks the text a store shows for a failed fetch: the API
// error's message, else the error text, else fallback.
func errorMessage(err error, fallback string) string {
	var apiErr *placeholder.APIError
	if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Message) != "" {
		return apiErr.Message
	}
	if err != nil && strings.TrimSpace(err.Error()) != "" {
		return err.Error()
	}
	return fallback
}
