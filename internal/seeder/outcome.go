// Package seeder contains the provisioning workflows: it sequences the
// platform REST calls that populate a test environment with legal entities,
// users, arrangements and entitlements.
package seeder

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/frahmantamala/bankseed/internal"
	"github.com/frahmantamala/bankseed/internal/platform"
)

// Outcome classifies the result of one creation call. A duplicate rejection
// is an expected condition for a tool that may be re-run against a partially
// seeded environment, so it gets its own non-error state.
type Outcome int

const (
	OutcomeCreated Outcome = iota
	OutcomeSkipped
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// CreateOrSkip issues a creation call exactly once (no retries, no backoff)
// and classifies the response:
//
//   - 201 decodes the body into entity (when non-nil) and reports Created.
//   - 400 whose error body carries alreadyExistsKey reports Skipped.
//   - Anything else reports Failed with the status and body preserved.
func CreateOrSkip(call func() (*http.Response, error), alreadyExistsKey string, entity any) (Outcome, error) {
	resp, err := call()
	if err != nil {
		return OutcomeFailed, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return OutcomeFailed, internal.NewExternalError("failed to read creation response", err)
	}

	switch {
	case resp.StatusCode == http.StatusCreated:
		if entity != nil {
			if err := json.Unmarshal(raw, entity); err != nil {
				return OutcomeFailed, internal.NewExternalError("failed to decode created entity", err)
			}
		}
		return OutcomeCreated, nil

	case resp.StatusCode == http.StatusBadRequest && platform.HasErrorKey(raw, alreadyExistsKey):
		return OutcomeSkipped, nil

	default:
		return OutcomeFailed, internal.NewUnexpectedStatusError(
			resp.Request.Method+" "+resp.Request.URL.Path,
			resp.StatusCode, string(raw))
	}
}
