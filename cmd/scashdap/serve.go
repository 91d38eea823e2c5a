package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/scashdap/v1/internal/app"
	logimpl "github.com/scashdap/v1/internal/core/infrastructure/log"
)

func newServeCmd(cc *cliContext) *cobra.Command {
	var withoutNode bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "启动 HTTP API 服务",
		Long: `启动编解码 HTTP API，配置了节点时同时提供按交易ID读取。

接口：
  POST /api/v1/dap/encode|decode|estimate|classify
  GET  /api/v1/dap/tx/:txid
  GET  /health
  GET  /metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// 服务模式保留控制台日志
			_ = os.Unsetenv(logimpl.CLIModeEnv)

			opts := []app.Option{app.WithConfigFile(cc.flags.ConfigPath)}
			if cc.flags.Network != "" {
				opts = append(opts, app.WithNetwork(cc.flags.Network))
			}
			if withoutNode {
				opts = append(opts, app.WithoutNode())
			}

			application, err := app.Start(opts...)
			if err != nil {
				return err
			}
			cc.formatter.PrintSuccess("API 服务已启动: " + application.Addr())
			return application.Wait()
		},
	}
	cmd.Flags().BoolVar(&withoutNode, "without-node", false, "不连接节点，只提供离线编解码")
	return cmd
}
