// Package types provides HTTP error type definitions.
package types

// ErrorResponse 统一错误响应格式
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail 错误详情
type ErrorDetail struct {
	Code      string      `json:"code"`                // 错误码
	Message   string      `json:"message"`             // 错误消息
	Details   interface{} `json:"details,omitempty"`   // 详细信息
	RequestID string      `json:"requestId,omitempty"` // 请求ID
	Timestamp string      `json:"timestamp,omitempty"` // 时间戳
}

// 错误码常量
const (
	// 通用错误码（400-499）
	ErrInvalidArgument   = "INVALID_ARGUMENT"
	ErrNotFound          = "NOT_FOUND"
	ErrRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrRequestTooLarge   = "REQUEST_TOO_LARGE"

	// 交易错误码
	ErrTxNotFound  = "TX_NOT_FOUND"
	ErrInvalidTxID = "INVALID_TXID"

	// 服务器错误码（500-599）
	ErrInternal           = "INTERNAL"
	ErrNodeUnavailable    = "NODE_UNAVAILABLE"
	ErrServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// NewErrorResponse 创建错误响应
func NewErrorResponse(code, message string, details interface{}) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// WithRequestID 添加请求ID
func (e *ErrorResponse) WithRequestID(requestID string) *ErrorResponse {
	e.Error.RequestID = requestID
	return e
}

// WithTimestamp 添加时间戳
func (e *ErrorResponse) WithTimestamp(timestamp string) *ErrorResponse {
	e.Error.Timestamp = timestamp
	return e
}

// ErrTxNotFoundResponse 交易不存在错误
func ErrTxNotFoundResponse(txid string) *ErrorResponse {
	return NewErrorResponse(
		ErrTxNotFound,
		"Transaction not found",
		map[string]interface{}{
			"txid": txid,
		},
	)
}

// ErrRateLimitResponse 限流错误
func ErrRateLimitResponse(limit int) *ErrorResponse {
	return NewErrorResponse(
		ErrRateLimitExceeded,
		"Request rate limit exceeded",
		map[string]interface{}{
			"limit":      limit,
			"retryAfter": "1s",
		},
	)
}
