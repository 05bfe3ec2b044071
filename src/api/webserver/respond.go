package webserver

import (
	"errors"
	"html"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"github.com/stake-plus/spycat-agency/src/api/agency"
)

// statusFor maps the lifecycle taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, agency.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, agency.ErrInvalidInput),
		errors.Is(err, agency.ErrInvalidCardinality),
		errors.Is(err, agency.ErrAlreadyAssigned),
		errors.Is(err, agency.ErrLocked),
		errors.Is(err, agency.ErrHasAssignment),
		errors.Is(err, agency.ErrHasActiveMission),
		errors.Is(err, agency.ErrInvalidBreed):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondErr(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		msg = "internal server error"
	}
	c.JSON(status, gin.H{"err": msg, "code": agency.Code(err)})
}

func badRequest(c *gin.Context, code, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"err": msg, "code": code})
}

func parseID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "invalid_id", "invalid "+name)
		return 0, false
	}
	return id, true
}

// textSanitizer strips markup from free text while keeping it readable as
// plain text. Entity-encoded markup is decoded before sanitising so it is
// stripped like literal markup; the output never contains '<'.
type textSanitizer struct {
	policy *bluemonday.Policy
}

// plainText reverses the escapes bluemonday applies to text that cannot open a
// tag. "&lt;" is left encoded.
var plainText = strings.NewReplacer("&amp;", "&", "&#34;", `"`, "&#39;", "'", "&gt;", ">")

func newTextSanitizer() textSanitizer {
	return textSanitizer{policy: bluemonday.StrictPolicy()}
}

func (s textSanitizer) Clean(v string) string {
	return strings.TrimSpace(plainText.Replace(s.policy.Sanitize(html.UnescapeString(v))))
}
