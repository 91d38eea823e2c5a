// Package handlers provides HTTP API handlers for the data address codec.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scashdap/v1/internal/api/http/middleware"
	apitypes "github.com/scashdap/v1/internal/api/http/types"
)

// respondOK 写入成功响应
func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, apitypes.NewSuccessResponse(data).
		WithRequestID(middleware.GetRequestID(c)).
		WithTimestamp(time.Now().UTC().Format(time.RFC3339)))
}

// respondBadRequest 写入参数错误响应
func respondBadRequest(c *gin.Context, message string, err error) {
	var details interface{}
	if err != nil {
		details = map[string]interface{}{"reason": err.Error()}
	}
	middleware.WriteError(c, http.StatusBadRequest,
		apitypes.NewErrorResponse(apitypes.ErrInvalidArgument, message, details))
}
