package logging

import (
	"net/http"
	"strconv"
	"strings"
)

// IsRateLimit reports whether err looks like an upstream throttling response.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "rate_limit") || strings.Contains(msg, strconv.Itoa(http.StatusTooManyRequests))
}
