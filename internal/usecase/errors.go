package usecase

import (
	"errors"
	"fmt"

	"github.com/crossmarket/crossmarket/internal/domain/models"
)

// ErrInvalidRange rejects a user-supplied range whose start falls after its
// end. Raised before any data access occurs.
var ErrInvalidRange = errors.New("start date must not be after end date")

// ErrUnknownQuery is returned for a catalog id that does not exist.
var ErrUnknownQuery = errors.New("unknown catalog query")

// NoDataError reports a valid query that matched nothing. Not a failure:
// the diagnostics help the user widen their filters.
type NoDataError struct {
	Diagnostics Diagnostics
}

// Diagnostics carries the detected identifiers and per-source date spans
// that explain an empty result.
type Diagnostics struct {
	CoinID  string               `json:"coin_id,omitempty"`
	Sources []models.SourceRange `json:"sources,omitempty"`
}

func (e *NoDataError) Error() string {
	return "no data in the selected range"
}

// QueryError wraps a store-level failure from one catalog query. Local to
// the runner: the rest of the application stays usable.
type QueryError struct {
	ID  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("catalog query %s failed: %v", e.ID, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
