package pagination

import (
	"strconv"
	"strings"
)

const (
	// DefaultMaxResults is the standard page size when the caller omits one.
	DefaultMaxResults = 50
	// MaxMaxResults caps how many rows any listing call can request.
	MaxMaxResults = 100
)

// Params holds offset pagination inputs parsed from a request.
type Params struct {
	MaxResults int
	NextToken  string
}

// NormalizeMaxResults enforces the configured default and maximum page sizes.
func NormalizeMaxResults(maxResults int) int {
	if maxResults <= 0 {
		return DefaultMaxResults
	}
	if maxResults > MaxMaxResults {
		return MaxMaxResults
	}
	return maxResults
}

// ParseToken decodes a next-token into the offset it encodes.
//
// Tokens are the string-encoded offset into the filtered result set. The
// scheme is weakly consistent: a token issued before intervening writes may
// skip or duplicate rows. That behavior is preserved deliberately for wire
// compatibility with existing callers. Malformed tokens degrade to offset
// zero rather than failing the request.
func ParseToken(token string) int {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0
	}
	offset, err := strconv.Atoi(token)
	if err != nil || offset < 0 {
		return 0
	}
	return offset
}

// NextToken returns the token for the following page, or empty when the
// current page exhausts the result set.
func NextToken(offset, maxResults int, totalCount int64) string {
	next := offset + maxResults
	if int64(next) >= totalCount {
		return ""
	}
	return strconv.Itoa(next)
}
