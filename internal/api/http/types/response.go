// Package types provides HTTP response type definitions.
package types

import "github.com/scashdap/v1/pkg/types"

// SuccessResponse 统一成功响应格式
type SuccessResponse struct {
	Data      interface{} `json:"data"`
	RequestID string      `json:"requestId,omitempty"`
	Timestamp string      `json:"timestamp,omitempty"`
}

// NewSuccessResponse 创建成功响应
func NewSuccessResponse(data interface{}) *SuccessResponse {
	return &SuccessResponse{
		Data: data,
	}
}

// WithRequestID 添加请求ID
func (r *SuccessResponse) WithRequestID(requestID string) *SuccessResponse {
	r.RequestID = requestID
	return r
}

// WithTimestamp 添加时间戳
func (r *SuccessResponse) WithTimestamp(timestamp string) *SuccessResponse {
	r.Timestamp = timestamp
	return r
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status     string                 `json:"status"` // healthy, degraded
	Version    string                 `json:"version"`
	Network    string                 `json:"network"`
	Uptime     string                 `json:"uptime"`
	Timestamp  string                 `json:"timestamp"`
	Components map[string]interface{} `json:"components"`
}

// EncodeRequest POST /dap/encode 请求体
type EncodeRequest struct {
	Text string `json:"text"`
}

// EncodeResponse 编码结果
type EncodeResponse struct {
	Outputs  []types.DapOutput  `json:"outputs"`
	Estimate types.CostEstimate `json:"estimate"`
}

// DecodeRequest POST /dap/decode 请求体
// outputs 元素可以是地址字符串、{address} 对象或 getrawtransaction 的 vout 元素
type DecodeRequest struct {
	Outputs []interface{} `json:"outputs" binding:"required"`
}

// DecodeResponse 解码结果
type DecodeResponse struct {
	Text        string                     `json:"text"`
	Found       bool                       `json:"found"`
	Compressed  bool                       `json:"compressed"`
	Mixed       bool                       `json:"mixed,omitempty"`
	Chunks      int                        `json:"chunks"`
	Skipped     int                        `json:"skipped"`
	PerProtocol map[types.ProtocolName]int `json:"perProtocol,omitempty"`
}

// EstimateRequest POST /dap/estimate 请求体
type EstimateRequest struct {
	Text string `json:"text"`
}

// ClassifyRequest POST /dap/classify 请求体
type ClassifyRequest struct {
	Addresses []string `json:"addresses" binding:"required"`
}

// AddressClass 单个地址的分类结果
type AddressClass struct {
	Address  string             `json:"address"`
	Protocol types.ProtocolName `json:"protocol,omitempty"`
	IsData   bool               `json:"isData"`
}
