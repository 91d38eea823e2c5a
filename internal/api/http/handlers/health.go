package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apitypes "github.com/scashdap/v1/internal/api/http/types"
	dapcodec "github.com/scashdap/v1/internal/core/dap"
)

// HealthHandler 健康检查端点处理器
//
// 编解码器是纯计算组件，只要进程存活即可服务；
// 节点连接只影响 /dap/tx 接口，因此只报告是否配置
type HealthHandler struct {
	codec     *dapcodec.Codec
	version   string
	nodeURL   string
	startTime time.Time
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(codec *dapcodec.Codec, version, nodeURL string) *HealthHandler {
	return &HealthHandler{
		codec:     codec,
		version:   version,
		nodeURL:   nodeURL,
		startTime: time.Now(),
	}
}

// RegisterRoutes 注册健康检查路由
func (h *HealthHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/health", h.GetHealth)
}

// GetHealth 获取健康状态
//
// GET /health
func (h *HealthHandler) GetHealth(c *gin.Context) {
	network := h.codec.Network()

	protocols := make([]string, 0, h.codec.Registry().Len())
	for _, p := range h.codec.Registry().Protocols() {
		protocols = append(protocols, p.Name.String())
	}

	node := map[string]interface{}{"status": "disabled"}
	status := "healthy"
	if h.nodeURL != "" {
		node = map[string]interface{}{"status": "configured", "url": h.nodeURL}
	} else {
		status = "degraded"
	}

	c.JSON(http.StatusOK, apitypes.HealthResponse{
		Status:    status,
		Version:   h.version,
		Network:   network.Name,
		Uptime:    time.Since(h.startTime).Truncate(time.Second).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Components: map[string]interface{}{
			"codec": map[string]interface{}{
				"status":    "healthy",
				"hrp":       network.Bech32HRP,
				"dustValue": network.DustValue,
				"protocols": protocols,
			},
			"node": node,
		},
	})
}
