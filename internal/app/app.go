// Package app assembles the long-running HTTP service from the fx modules.
package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// App 是服务进程的对外接口
type App interface {
	// Stop 停止应用
	Stop() error

	// Wait 阻塞直到收到退出信号，然后停止应用
	Wait() error

	// Addr 返回 HTTP 服务实际监听地址，API 未启用时为空
	Addr() string
}

// internalApp 应用的内部实现
type internalApp struct {
	bootstrap *Bootstrap
}

// Stop 停止应用
func (a *internalApp) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return a.bootstrap.StopApp(ctx)
}

// Wait 等待中断信号或终止信号
func (a *internalApp) Wait() error {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	<-signals
	return a.Stop()
}

// Addr 返回 HTTP 服务监听地址
func (a *internalApp) Addr() string {
	if a.bootstrap.server == nil {
		return ""
	}
	return a.bootstrap.server.Addr()
}

// Start 启动服务
func Start(appOptions ...Option) (App, error) {
	return BootstrapApp(appOptions...)
}
