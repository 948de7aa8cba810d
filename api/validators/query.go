package validators

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/sellgrid/sellermock/pkg/errors"
)

// ParseQueryInt reads an integer query parameter within the given bounds.
func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeInvalidInput, fmt.Sprintf("query parameter %s must be numeric", key))
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeInvalidInput, fmt.Sprintf("query parameter %s must be between %d and %d", key, min, max))
	}
	return value, nil
}

// ParseQueryBool reads a boolean query parameter, defaulting when absent.
func ParseQueryBool(r *http.Request, key string, defaultVal bool) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, pkgerrors.New(pkgerrors.CodeInvalidInput, fmt.Sprintf("query parameter %s must be a boolean", key))
	}
	return value, nil
}

// QueryCSV reads a parameter that may be repeated or comma-separated,
// returning the trimmed non-empty values.
func QueryCSV(r *http.Request, key string) []string {
	var out []string
	for _, raw := range r.URL.Query()[key] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

var queryTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseOptionalTime parses an optional ISO8601 timestamp taken from a
// request body; nil in, nil out.
func ParseOptionalTime(raw *string, field string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	for _, layout := range queryTimeLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(*raw)); err == nil {
			return &t, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeInvalidInput, fmt.Sprintf("%s must be an ISO8601 timestamp", field))
}

// ParseQueryTime reads an ISO8601 timestamp parameter; nil when absent.
func ParseQueryTime(r *http.Request, key string) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	for _, layout := range queryTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeInvalidInput, fmt.Sprintf("query parameter %s must be an ISO8601 timestamp", key))
}
