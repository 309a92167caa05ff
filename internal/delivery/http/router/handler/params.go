package handler

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// parseIDParam parses a UUID path parameter.
func parseIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errors.Wrapf(err, "invalid %s", name)
	}

	return id, nil
}

// parsePagination reads limit/offset query parameters. Missing or
// malformed values fall back to zero; usecases apply their own defaults.
func parsePagination(c echo.Context) (limit, offset int) {
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		limit = v
	}
	if v, err := strconv.Atoi(c.QueryParam("offset")); err == nil {
		offset = v
	}

	return limit, offset
}
