package gsheets

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"

	"github.com/setbook/sheetstore/store"
)

// mapErr translates googleapi failures into the store error taxonomy,
// keeping the remote message attached. The Sheets API reports throttling
// both as 429 and as 403 with a rate-limit reason.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}
	switch gerr.Code {
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", store.ErrRateLimited, gerr.Message)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", store.ErrNotAuthenticated, gerr.Message)
	case http.StatusForbidden:
		for _, item := range gerr.Errors {
			if item.Reason == "rateLimitExceeded" || item.Reason == "userRateLimitExceeded" {
				return fmt.Errorf("%w: %s", store.ErrRateLimited, gerr.Message)
			}
		}
		return fmt.Errorf("%w: %s", store.ErrPermissionDenied, gerr.Message)
	}
	return err
}
