package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scashdap/v1/client/core/output"
	"github.com/scashdap/v1/client/core/transport"
	"github.com/scashdap/v1/client/core/wallet"
	"github.com/scashdap/v1/internal/app/version"
	config "github.com/scashdap/v1/internal/config"
	logconfig "github.com/scashdap/v1/internal/config/log"
	"github.com/scashdap/v1/internal/config/network"
	"github.com/scashdap/v1/internal/core/dap"
	logimpl "github.com/scashdap/v1/internal/core/infrastructure/log"
	logInterface "github.com/scashdap/v1/pkg/interfaces/infrastructure/log"
)

// GlobalFlags 全局标志
type GlobalFlags struct {
	ConfigPath   string // 配置文件路径
	Network      string // 覆盖配置中的网络
	OutputFormat string // 输出格式
	Silent       bool   // 静默模式
	Verbose      bool   // 详细模式
}

// cliContext 命令执行期间共享的状态
type cliContext struct {
	flags     GlobalFlags
	formatter *output.Formatter
	provider  *config.Provider
	params    *network.Params
	codec     *dap.Codec
	logger    logInterface.Logger
}

// newRootCmd 构建命令树
func newRootCmd() *cobra.Command {
	cc := &cliContext{}

	rootCmd := &cobra.Command{
		Use:   "scashdap",
		Short: "Scash 链上数据地址工具",
		Long: `scashdap - 将文本编码为交易输出中的数据地址，并从交易中还原

每 28 字节载荷加 4 字节协议头组成一个 32 字节数据块，
伪装成 P2WSH 地址写入交易输出，每个输出金额为 546 聪。
文本经 zlib 压缩后更短时使用 ZIP 协议，否则使用 RAW 协议。`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.GetVersion(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cc.setup(cmd)
		},
	}

	rootCmd.SetVersionTemplate(version.GetFullVersion() + "\n")

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cc.flags.ConfigPath, "config", "c", "", "配置文件路径 (默认读取 $"+config.EnvConfigPath+")")
	flags.StringVarP(&cc.flags.Network, "network", "n", "", "网络: "+strings.Join(network.Names(), "|"))
	flags.StringVarP(&cc.flags.OutputFormat, "output", "o", "text", "输出格式: json|pretty|table|text")
	flags.BoolVar(&cc.flags.Silent, "silent", false, "静默模式 (不输出提示信息)")
	flags.BoolVarP(&cc.flags.Verbose, "verbose", "v", false, "详细输出 (调试日志写到 stderr)")

	rootCmd.AddCommand(
		newWalletCmd(cc),
		newWriteCmd(cc),
		newReadCmd(cc),
		newEncodeCmd(cc),
		newDecodeCmd(cc),
		newEstimateCmd(cc),
		newServeCmd(cc),
	)
	return rootCmd
}

// setup 加载配置并初始化日志、编解码器与输出格式化器
func (cc *cliContext) setup(cmd *cobra.Command) error {
	format, err := output.ParseFormat(cc.flags.OutputFormat)
	if err != nil {
		return err
	}
	cc.formatter = output.NewFormatter(format, cmd.OutOrStdout())
	cc.formatter.SetLogWriter(cmd.ErrOrStderr())
	cc.formatter.SetSilent(cc.flags.Silent)

	appConfig, err := config.Load(config.ResolvePath(cc.flags.ConfigPath))
	if err != nil {
		return err
	}
	cc.provider = config.NewProvider(appConfig)
	if cc.flags.Network != "" {
		cc.provider = cc.provider.WithNetwork(cc.flags.Network)
	}
	if cc.params, err = cc.provider.GetNetwork(); err != nil {
		return err
	}

	if cc.logger, err = cc.newLogger(); err != nil {
		return err
	}

	dapOptions := *cc.provider.GetDAP()
	dapOptions.Debug = dapOptions.Debug || cc.flags.Verbose
	cc.codec, err = dap.NewFromConfig(cc.params, &dapOptions, cc.logger)
	return err
}

// newLogger 命令行模式下日志只写文件；--verbose 时输出到 stderr
func (cc *cliContext) newLogger() (logInterface.Logger, error) {
	opts := *cc.provider.GetLog().GetOptions()
	if cc.flags.Verbose {
		opts.Level = "debug"
		opts.ToConsole = true
		_ = os.Unsetenv(logimpl.CLIModeEnv)
	} else {
		_ = os.Setenv(logimpl.CLIModeEnv, "true")
		if opts.FilePath == "" || opts.FilePath == "stderr" || opts.FilePath == "stdout" {
			return logimpl.NewNop(), nil
		}
	}
	logger, err := logimpl.New(logconfig.NewFromOptions(&opts))
	if err != nil {
		return nil, fmt.Errorf("初始化日志: %w", err)
	}
	logimpl.SetLogger(logger)
	return logger, nil
}

// newTransport 创建节点客户端
func (cc *cliContext) newTransport() transport.Client {
	rpc := cc.provider.GetRPC()
	return transport.NewJSONRPCClient(rpc.URL, rpc.User, rpc.Pass, rpc.Timeout)
}

// loadAccount 从 .env 读取助记词并派生账户
func (cc *cliContext) loadAccount(envPath string) (*wallet.Account, error) {
	opts := cc.provider.GetWallet()
	if envPath == "" {
		envPath = opts.EnvPath
	}
	store := wallet.NewEnvStore(envPath)
	mnemonic, ok, err := store.LoadMnemonic()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%s 中没有助记词，请先运行 scashdap wallet", store.Path())
	}
	path, err := wallet.ParseDerivationPath(opts.DerivationPath)
	if err != nil {
		return nil, err
	}
	return wallet.DeriveAccount(mnemonic, opts.Passphrase, path, cc.params.ChainParams())
}

// joinTextArgs 参数拼接为文本；没有参数时读取标准输入
func joinTextArgs(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := readAllLimited(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("读取标准输入: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}
