package pagination

import (
	"errors"
	"net/url"
	"testing"

	"github.com/sakif/qna-service/internal/apperror"
)

func query(pairs ...string) url.Values {
	v := url.Values{}
	for i := 0; i < len(pairs); i += 2 {
		v.Set(pairs[i], pairs[i+1])
	}
	return v
}

func TestFromQuery_ValidPair(t *testing.T) {
	p, err := FromQuery(query("limit", "5", "offset", "10"))
	if err != nil {
		t.Fatalf("FromQuery() error = %v", err)
	}
	if p.Limit != 5 || p.Offset != 10 {
		t.Errorf("FromQuery() = %+v, want {Limit:5 Offset:10}", p)
	}
}

func TestFromQuery_PassesValuesThroughUnmodified(t *testing.T) {
	// No clamping, no defaults — the validator returns exactly what was sent.
	cases := []struct {
		limit, offset string
		wantL, wantO  int
	}{
		{"0", "0", 0, 0},       // limit=0 is legal, yields empty pages
		{"1", "0", 1, 0},
		{"100000", "99", 100000, 99}, // no upper bound on limit
	}
	for _, tc := range cases {
		p, err := FromQuery(query("limit", tc.limit, "offset", tc.offset))
		if err != nil {
			t.Fatalf("FromQuery(limit=%s offset=%s) error = %v", tc.limit, tc.offset, err)
		}
		if p.Limit != tc.wantL || p.Offset != tc.wantO {
			t.Errorf("FromQuery(limit=%s offset=%s) = %+v", tc.limit, tc.offset, p)
		}
	}
}

func TestFromQuery_MissingParameters(t *testing.T) {
	cases := []url.Values{
		query(),                  // neither
		query("limit", "5"),      // offset absent
		query("offset", "3"),     // limit absent
	}
	for _, params := range cases {
		_, err := FromQuery(params)
		if err == nil {
			t.Fatalf("FromQuery(%v) expected error", params)
		}
		if !errors.Is(err, apperror.ErrValidation) {
			t.Errorf("FromQuery(%v) error kind = %v, want ErrValidation", params, err)
		}
	}
}

func TestFromQuery_ParseErrorNamesField(t *testing.T) {
	cases := []struct {
		params    url.Values
		wantField string
	}{
		{query("limit", "abc", "offset", "3"), "limit"},
		{query("limit", "5", "offset", "x"), "offset"},
		{query("limit", "-1", "offset", "3"), "limit"},
		{query("limit", "5", "offset", "-2"), "offset"},
		{query("limit", "", "offset", "3"), "limit"},
	}
	for _, tc := range cases {
		_, err := FromQuery(tc.params)
		if err == nil {
			t.Fatalf("FromQuery(%v) expected error", tc.params)
		}
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			t.Fatalf("FromQuery(%v) error is not *AppError: %v", tc.params, err)
		}
		if appErr.Field != tc.wantField {
			t.Errorf("FromQuery(%v) field = %q, want %q", tc.params, appErr.Field, tc.wantField)
		}
	}
}
