package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// parseIDParam reads a positive id path parameter. On failure it has already
// written the 400 and returns 0.
func (h *BaseHandler) parseIDParam(c *gin.Context, param string) uint {
	idStr := strings.TrimSpace(c.Param(param))
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		details := "ID must be a positive integer"
		if err != nil {
			details = err.Error()
		}
		h.RespondWithError(c, http.StatusBadRequest, CodeValidation, "Invalid "+param, nil, details)
		return 0
	}
	return uint(id)
}

// bindJSON decodes the body, answering 400 when it is malformed
func (h *BaseHandler) bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, CodeValidation, "Invalid request payload", nil, err.Error())
		return false
	}
	return true
}

// bindOptionalJSON is bindJSON for bodies that may be absent. An empty body,
// chunked or not, leaves dest untouched.
func (h *BaseHandler) bindOptionalJSON(c *gin.Context, dest interface{}) bool {
	err := c.ShouldBindJSON(dest)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	h.RespondWithError(c, http.StatusBadRequest, CodeValidation, "Invalid request payload", nil, err.Error())
	return false
}
