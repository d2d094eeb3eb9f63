// Package pagination validates the query parameters that bound list reads.
//
// The API has no implicit "return everything" mode: a list request must name
// its window explicitly. Treating an absent window as an error (rather than
// defaulting) keeps accidental full-table scans out of the read path.
package pagination

import (
	"net/url"
	"strconv"

	"github.com/sakif/qna-service/internal/apperror"
)

// Pagination is the validated (limit, offset) window for a bounded read.
// It is derived per-request and never persisted.
type Pagination struct {
	Limit  int
	Offset int
}

// FromQuery parses and bounds-checks the limit/offset query parameters.
//
// Rules:
//   - both "limit" and "offset" must be present, otherwise MissingParameters
//   - both must parse as non-negative integers, otherwise ParseError naming
//     the offending field
//   - limit=0 is legal and yields empty pages
//   - no upper bound is enforced on limit
//
// Pure function: no defaults are injected and the returned pair is exactly
// what the client sent.
func FromQuery(params url.Values) (Pagination, error) {
	if !params.Has("limit") || !params.Has("offset") {
		return Pagination{}, apperror.MissingParameters()
	}

	limit, err := parseNonNegative("limit", params.Get("limit"))
	if err != nil {
		return Pagination{}, err
	}

	offset, err := parseNonNegative("offset", params.Get("offset"))
	if err != nil {
		return Pagination{}, err
	}

	return Pagination{Limit: limit, Offset: offset}, nil
}

// parseNonNegative parses a single query value as a non-negative integer.
// A leading minus sign fails the same way a non-numeric value does — the
// original wire format only ever carried unsigned values.
func parseNonNegative(field, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, apperror.ParseError(field, value)
	}
	return n, nil
}
