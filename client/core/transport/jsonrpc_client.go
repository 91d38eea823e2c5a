package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	logimpl "github.com/scashdap/v1/internal/core/infrastructure/log"
)

// maxResponseSize 单次响应体上限
const maxResponseSize = 32 << 20

// RPCError 节点返回的 JSON-RPC 错误
type RPCError struct {
	Method  string
	Code    int
	Message string
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("%s: rpc error %d: %s", e.Method, e.Code, e.Message)
}

// ErrEmptyResult 节点返回了空结果
var ErrEmptyResult = errors.New("empty rpc result")

// JSONRPCClient JSON-RPC 客户端实现（比特币节点风格，HTTP Basic 认证）
type JSONRPCClient struct {
	endpoint   string
	user       string
	pass       string
	httpClient *http.Client
	nextID     atomic.Uint64
}

var _ Client = (*JSONRPCClient)(nil)

// NewJSONRPCClient 创建JSON-RPC客户端
func NewJSONRPCClient(endpoint, user, pass string, timeout time.Duration) *JSONRPCClient {
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &JSONRPCClient{
		endpoint: endpoint,
		user:     user,
		pass:     pass,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Endpoint 返回节点地址
func (c *JSONRPCClient) Endpoint() string {
	return c.endpoint
}

// jsonrpcRequest JSON-RPC 请求
type jsonrpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
	ID      uint64        `json:"id"`
}

// jsonrpcResponse JSON-RPC 响应
type jsonrpcResponse struct {
	Result json.RawMessage `json:"result,omitempty"`
	Error  *jsonrpcError   `json:"error,omitempty"`
	ID     uint64          `json:"id"`
}

// jsonrpcError JSON-RPC 错误
type jsonrpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// call 统一的JSON-RPC调用方法
// 比特币节点在出错时返回非 200 状态码，但响应体仍是 JSON-RPC 错误对象
func (c *JSONRPCClient) call(ctx context.Context, method string, params []interface{}, result interface{}) error {
	if params == nil {
		params = []interface{}{}
	}
	req := &jsonrpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      c.nextID.Add(1),
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.user != "" || c.pass != "" {
		httpReq.SetBasicAuth(c.user, c.pass)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%s: http request: %w", method, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logimpl.Warnf("关闭响应体失败: %v", err)
		}
	}()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%s: read response: %w", method, err)
	}

	var jsonResp jsonrpcResponse
	if err := json.Unmarshal(respBody, &jsonResp); err != nil {
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("%s: http status %d: %s", method, resp.StatusCode, strings.TrimSpace(string(respBody)))
		}
		return fmt.Errorf("%s: unmarshal response: %w", method, err)
	}

	if jsonResp.Error != nil {
		return &RPCError{Method: method, Code: jsonResp.Error.Code, Message: jsonResp.Error.Message}
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: http status %d", method, resp.StatusCode)
	}

	if result == nil {
		return nil
	}
	if len(jsonResp.Result) == 0 || string(jsonResp.Result) == "null" {
		return fmt.Errorf("%s: %w", method, ErrEmptyResult)
	}
	if err := json.Unmarshal(jsonResp.Result, result); err != nil {
		return fmt.Errorf("%s: unmarshal result: %w", method, err)
	}
	return nil
}

// ===== 接口实现 =====

// GetRawTransaction 获取交易详情
func (c *JSONRPCClient) GetRawTransaction(ctx context.Context, txid string) (*RawTransaction, error) {
	var tx RawTransaction
	if err := c.call(ctx, "getrawtransaction", []interface{}{txid, true}, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// ScanTxOutSet 扫描地址的未花费输出
func (c *JSONRPCClient) ScanTxOutSet(ctx context.Context, address string) (*ScanTxOutSetResult, error) {
	params := []interface{}{
		"start",
		[]map[string]string{{"desc": AddrDescriptor(address)}},
	}
	var result ScanTxOutSetResult
	if err := c.call(ctx, "scantxoutset", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SendRawTransaction 广播已签名交易
func (c *JSONRPCClient) SendRawTransaction(ctx context.Context, signedTxHex string) (string, error) {
	var txid string
	if err := c.call(ctx, "sendrawtransaction", []interface{}{signedTxHex}, &txid); err != nil {
		return "", err
	}
	return txid, nil
}
