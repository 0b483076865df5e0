package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bid-labs/ticketgen/internal/shared/errors"
)

// ParseIDParam parses a positive numeric id from a URL path parameter.
// entityName is used in error messages (e.g., "ticket", "client").
func ParseIDParam(c *gin.Context, paramName, entityName string) (uint, error) {
	raw := c.Param(paramName)
	if raw == "" {
		return 0, errors.NewValidationError(entityName + " ID is required")
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("invalid " + entityName + " ID")
	}
	return uint(id), nil
}

// ParseOptionalUintQuery returns nil when the query key is absent.
func ParseOptionalUintQuery(c *gin.Context, key string) (*uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return nil, errors.NewValidationError("invalid " + key)
	}
	u := uint(v)
	return &u, nil
}

// ParseOptionalBoolQuery returns nil when the query key is absent.
func ParseOptionalBoolQuery(c *gin.Context, key string) (*bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, errors.NewValidationError("invalid " + key)
	}
	return &v, nil
}
