// Package http provides the gin based HTTP API for the data address codec.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/scashdap/v1/internal/api/http/handlers"
	"github.com/scashdap/v1/internal/api/http/middleware"
	apiconfig "github.com/scashdap/v1/internal/config/api"
	dapcodec "github.com/scashdap/v1/internal/core/dap"
	logimpl "github.com/scashdap/v1/internal/core/infrastructure/log"
	"github.com/scashdap/v1/pkg/interfaces/infrastructure/log"
)

// EnvCLIMode CLI 模式环境变量，设置为 "true" 时抑制 gin 控制台输出
const EnvCLIMode = logimpl.CLIModeEnv

// ServerConfig 服务器依赖
type ServerConfig struct {
	Options  *apiconfig.APIOptions
	Codec    *dapcodec.Codec
	Reader   handlers.TxReader // 可为空
	Registry *prometheus.Registry
	Logger   log.Logger
	Version  string
	NodeURL  string
}

// Server HTTP服务器
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	options    *apiconfig.APIOptions
	logger     log.Logger

	mu       sync.Mutex
	listener net.Listener
	done     chan struct{}
}

// NewServer 创建HTTP服务器并注册路由
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Codec == nil {
		return nil, errors.New("codec is required")
	}
	if cfg.Options == nil {
		cfg.Options = apiconfig.New(nil).GetOptions()
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}
	if cfg.Logger == nil {
		cfg.Logger = logimpl.NewNop()
	}

	cliMode := os.Getenv(EnvCLIMode) == "true"
	if cliMode {
		gin.SetMode(gin.ReleaseMode)
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
	}

	metrics, err := middleware.NewMetrics(cfg.Registry)
	if err != nil {
		return nil, fmt.Errorf("register api metrics: %w", err)
	}

	router := gin.New()
	router.Use(
		middleware.NewRequestID().Middleware(),
		middleware.Recovery(cfg.Logger.GetZapLogger()),
		middleware.NewLogger(cfg.Logger).Middleware(),
		metrics.Middleware(),
		middleware.BodyLimit(cfg.Options.MaxRequestSize),
	)

	s := &Server{
		router:  router,
		options: cfg.Options,
		logger:  cfg.Logger,
		httpServer: &http.Server{
			Handler:      router,
			ReadTimeout:  cfg.Options.ReadTimeout,
			WriteTimeout: cfg.Options.WriteTimeout,
			IdleTimeout:  60 * time.Second,
		},
	}

	handlers.NewHealthHandler(cfg.Codec, cfg.Version, cfg.NodeURL).RegisterRoutes(router)
	if cfg.Options.EnableMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{Registry: cfg.Registry})))
	}

	v1 := router.Group("/api/v1")
	dapHandlers := handlers.NewDAPHandlers(cfg.Codec, cfg.Reader, metrics, cfg.Logger)
	dapHandlers.RegisterRoutes(v1,
		[]gin.HandlerFunc{middleware.NewRateLimit(cfg.Options.RateLimit).Middleware()},
		[]gin.HandlerFunc{middleware.NewRateLimit(cfg.Options.NodeRateLimit).Middleware()},
	)

	return s, nil
}

// Handler 返回路由处理器
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr 返回实际监听地址，未启动时返回配置地址
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.options.Listen
}

// Start 监听端口并在后台提供服务
// 端口被占用时直接返回错误
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return errors.New("http server already started")
	}

	listener, err := net.Listen("tcp", s.options.Listen)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.options.Listen, err)
	}
	s.listener = listener
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Errorf("HTTP服务器运行失败: %v", err)
		}
	}()

	s.logger.Infof("HTTP服务器启动成功，监听地址: %s", listener.Addr())
	return nil
}

// Stop 优雅关闭服务器，等待进行中的请求完成
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	done := s.done
	started := s.listener != nil
	s.mu.Unlock()
	if !started {
		return nil
	}

	stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(stopCtx); err != nil {
		s.logger.Errorf("HTTP服务器关闭出错: %v", err)
		return err
	}
	<-done
	s.logger.Info("HTTP服务器已关闭")
	return nil
}
