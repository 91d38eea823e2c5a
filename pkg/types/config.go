// Package types provides configuration and protocol type definitions.
package types

// AppConfig 应用程序根配置
// 只包含JSON配置文件解析所需的结构，指针字段用于区分"未设置"和"设置为零值"
// 默认值在 internal/config 各子包中定义
type AppConfig struct {
	// Network 网络名称：mainnet | regtest
	Network *string `json:"network,omitempty"`

	// DAP 数据地址协议参数覆盖
	DAP *UserDAPConfig `json:"dap,omitempty"`

	// RPC 节点连接配置
	RPC *UserRPCConfig `json:"rpc,omitempty"`

	// Wallet 钱包配置
	Wallet *UserWalletConfig `json:"wallet,omitempty"`

	// API HTTP 服务配置
	API *UserAPIConfig `json:"api,omitempty"`

	// Cache 交易查询缓存配置
	Cache *UserCacheConfig `json:"cache,omitempty"`

	// Log 日志配置
	Log *UserLogConfig `json:"log,omitempty"`
}

// UserDAPConfig 数据地址协议配置
type UserDAPConfig struct {
	Bech32HRP        *string `json:"bech32_hrp,omitempty"`        // 覆盖网络默认的地址前缀
	DustValue        *int64  `json:"dust_value,omitempty"`        // 每个数据输出的金额（聪）
	CompressionLevel *int    `json:"compression_level,omitempty"` // zlib 压缩级别
	MaxInflateSize   *int    `json:"max_inflate_size,omitempty"`  // 解码时解压结果上限（字节）
	Debug            *bool   `json:"debug,omitempty"`             // 输出压缩决策等调试日志
}

// UserRPCConfig 节点 RPC 配置
type UserRPCConfig struct {
	URL     *string `json:"url,omitempty"`
	User    *string `json:"user,omitempty"`
	Pass    *string `json:"pass,omitempty"`
	Timeout *string `json:"timeout,omitempty"` // Go duration 格式，如 "30s"
}

// UserWalletConfig 钱包配置
type UserWalletConfig struct {
	EnvPath        *string `json:"env_path,omitempty"`        // 助记词 .env 文件路径
	DerivationPath *string `json:"derivation_path,omitempty"` // 派生路径，默认 m/84'/0'/0'/0/0
	Passphrase     *string `json:"passphrase,omitempty"`      // BIP39 密码
	FeeSats        *int64  `json:"fee_sats,omitempty"`        // 固定手续费（聪）
	MinUTXOSats    *int64  `json:"min_utxo_sats,omitempty"`   // 可用 UTXO 最小金额（聪）
}

// UserAPIConfig HTTP API 配置
type UserAPIConfig struct {
	Listen        *string `json:"listen,omitempty"`
	EnableMetrics *bool   `json:"enable_metrics,omitempty"`
	RateLimit     *int    `json:"rate_limit,omitempty"`      // 编解码接口每个IP每秒请求数
	NodeRateLimit *int    `json:"node_rate_limit,omitempty"` // 需要访问节点的接口每个IP每秒请求数
}

// UserCacheConfig 缓存配置
type UserCacheConfig struct {
	LifeWindow   *string `json:"life_window,omitempty"`    // Go duration 格式
	MaxEntrySize *int    `json:"max_entry_size,omitempty"` // 字节
	Disabled     *bool   `json:"disabled,omitempty"`
}

// UserLogConfig 用户日志配置
// 只包含JSON配置文件中实际出现的字段
type UserLogConfig struct {
	Level      *string `json:"level,omitempty"`     // 日志级别：debug, info, warn, error
	FilePath   *string `json:"file_path,omitempty"` // 日志文件路径
	ToConsole  *bool   `json:"to_console,omitempty"`
	MaxSize    *int    `json:"max_size,omitempty"`
	MaxBackups *int    `json:"max_backups,omitempty"`
	MaxAge     *int    `json:"max_age,omitempty"`
}

// 配置辅助函数

// BoolPtr 创建bool指针，用于明确表示用户设置了该值
func BoolPtr(v bool) *bool {
	return &v
}

// IntPtr 创建int指针，用于明确表示用户设置了该值
func IntPtr(v int) *int {
	return &v
}

// Int64Ptr 创建int64指针，用于明确表示用户设置了该值
func Int64Ptr(v int64) *int64 {
	return &v
}

// StringPtr 创建string指针，用于明确表示用户设置了该值
func StringPtr(v string) *string {
	return &v
}
