package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/recipehub/backend/internal/apperror"
	"github.com/pageza/recipehub/backend/internal/middleware"
	"github.com/pageza/recipehub/backend/internal/types"
)

// fail hands err to middleware.ErrorHandler, which renders it.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, apperror.Validation("id", "uuid", "id must be a valid id"))
		return uuid.Nil, false
	}
	return id, true
}

// principal returns the caller set by middleware.Authenticate. Routes using
// it are always behind that middleware.
func principal(c *gin.Context) (types.Principal, bool) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return types.Principal{}, false
	}
	return *p, true
}

// bindJSON decodes the request body. Malformed JSON is a validation error
// on the body as a whole.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		fail(c, apperror.Validation("body", "json", "request body must be valid JSON: "+err.Error()))
		return false
	}
	return true
}

// queryInt parses an optional integer query parameter, recording a field
// error when present but malformed.
func queryInt(c *gin.Context, name string, verr *apperror.ValidationError) int {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		verr.Add(name, "int", name+" must be an integer")
		return 0
	}
	return v
}

// queryList accepts both repeated parameters and comma-separated values.
func queryList(c *gin.Context, name string) []string {
	var out []string
	for _, raw := range c.QueryArray(name) {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}
