package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	clientdap "github.com/scashdap/v1/client/core/dap"
	"github.com/scashdap/v1/client/core/transport"
	"github.com/scashdap/v1/internal/api/http/middleware"
	apitypes "github.com/scashdap/v1/internal/api/http/types"
	dapcodec "github.com/scashdap/v1/internal/core/dap"
	"github.com/scashdap/v1/pkg/interfaces/infrastructure/log"
	"github.com/scashdap/v1/pkg/types"
)

// rpcNotFound 节点 "No such mempool or blockchain transaction" 错误码
const rpcNotFound = -5

// TxReader 按交易ID读取数据
type TxReader interface {
	Read(ctx context.Context, txid string) (*clientdap.ReadResult, error)
}

// DAPHandlers 数据地址编解码接口
type DAPHandlers struct {
	codec   *dapcodec.Codec
	reader  TxReader // 为空时交易查询接口返回 503
	metrics *middleware.Metrics
	logger  log.Logger
}

// NewDAPHandlers 创建编解码接口处理器
func NewDAPHandlers(codec *dapcodec.Codec, reader TxReader, metrics *middleware.Metrics, logger log.Logger) *DAPHandlers {
	return &DAPHandlers{codec: codec, reader: reader, metrics: metrics, logger: logger}
}

// RegisterRoutes 注册编解码路由
// codecMW 作用于纯计算接口，nodeMW 作用于需要访问节点的接口
func (h *DAPHandlers) RegisterRoutes(r *gin.RouterGroup, codecMW, nodeMW []gin.HandlerFunc) {
	g := r.Group("/dap")

	codec := g.Group("", codecMW...)
	codec.POST("/encode", h.Encode)
	codec.POST("/decode", h.Decode)
	codec.POST("/estimate", h.Estimate)
	codec.POST("/classify", h.Classify)

	node := g.Group("", nodeMW...)
	node.GET("/tx/:txid", h.GetTransaction)
}

// Encode 编码文本
//
// POST /api/v1/dap/encode
func (h *DAPHandlers) Encode(c *gin.Context) {
	var req apitypes.EncodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "text is required", err)
		return
	}

	outputs, err := h.codec.Encode(req.Text)
	if err != nil {
		h.logger.Errorf("编码失败: %v", err)
		middleware.WriteError(c, http.StatusInternalServerError,
			apitypes.NewErrorResponse(apitypes.ErrInternal, "encode failed", nil))
		return
	}

	estimate := h.codec.Estimate(req.Text)
	h.metrics.ObserveEncode(estimate.Mode.String(), len(outputs))
	middleware.AnnotateDAP(c, estimate.Mode.String(), len(outputs))
	respondOK(c, apitypes.EncodeResponse{Outputs: outputs, Estimate: estimate})
}

// Decode 从输出列表还原文本
//
// POST /api/v1/dap/decode
func (h *DAPHandlers) Decode(c *gin.Context) {
	var req apitypes.DecodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "outputs is required", err)
		return
	}

	scan := h.codec.Scan(req.Outputs)
	text := h.codec.DecodeScan(scan)
	h.metrics.ObserveDecode(protocolCounts(scan.PerProtocol), scan.Chunks > 0 && text == "" && len(scan.Data) > 0)
	middleware.AnnotateDAP(c, scanProtocol(scan.Compressed, scan.Chunks), scan.Chunks)

	respondOK(c, apitypes.DecodeResponse{
		Text:        text,
		Found:       scan.Chunks > 0,
		Compressed:  scan.Compressed,
		Mixed:       scan.Mixed,
		Chunks:      scan.Chunks,
		Skipped:     scan.Skipped,
		PerProtocol: scan.PerProtocol,
	})
}

// Estimate 估算上链成本
//
// POST /api/v1/dap/estimate
func (h *DAPHandlers) Estimate(c *gin.Context) {
	var req apitypes.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "text is required", err)
		return
	}
	respondOK(c, h.codec.Estimate(req.Text))
}

// Classify 判断地址是否为数据地址
//
// POST /api/v1/dap/classify
func (h *DAPHandlers) Classify(c *gin.Context) {
	var req apitypes.ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "addresses is required", err)
		return
	}

	result := make([]apitypes.AddressClass, 0, len(req.Addresses))
	for _, addr := range req.Addresses {
		p, ok := h.codec.ProtocolOf(addr)
		result = append(result, apitypes.AddressClass{Address: addr, Protocol: p, IsData: ok})
	}
	respondOK(c, result)
}

// GetTransaction 读取链上交易中的数据
//
// GET /api/v1/dap/tx/:txid
func (h *DAPHandlers) GetTransaction(c *gin.Context) {
	if h.reader == nil {
		middleware.WriteError(c, http.StatusServiceUnavailable, apitypes.NewErrorResponse(
			apitypes.ErrServiceUnavailable, "node access is not configured", nil))
		return
	}

	txid := c.Param("txid")
	result, err := h.reader.Read(c.Request.Context(), txid)
	if err != nil {
		var rpcErr *transport.RPCError
		switch {
		case errors.Is(err, clientdap.ErrInvalidTxID):
			middleware.WriteError(c, http.StatusBadRequest, apitypes.NewErrorResponse(
				apitypes.ErrInvalidTxID, "txid must be 64 hex characters", map[string]interface{}{"txid": txid}))
		case errors.As(err, &rpcErr) && rpcErr.Code == rpcNotFound:
			middleware.WriteError(c, http.StatusNotFound, apitypes.ErrTxNotFoundResponse(txid))
		default:
			h.logger.Warnf("读取交易失败: txid=%s err=%v", txid, err)
			middleware.WriteError(c, http.StatusBadGateway, apitypes.NewErrorResponse(
				apitypes.ErrNodeUnavailable, "node request failed", map[string]interface{}{"reason": err.Error()}))
		}
		return
	}

	h.metrics.ObserveDecode(protocolCounts(result.PerProtocol), result.Found && result.Text == "")
	middleware.AnnotateDAP(c, scanProtocol(result.Compressed, result.Chunks), result.Chunks)
	respondOK(c, result)
}

func protocolCounts(m map[types.ProtocolName]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k.String()] = v
	}
	return out
}

// scanProtocol 解码结果对应的协议，没有数据块时为空
func scanProtocol(compressed bool, chunks int) string {
	switch {
	case chunks == 0:
		return ""
	case compressed:
		return types.ProtocolZIP.String()
	default:
		return types.ProtocolRAW.String()
	}
}
