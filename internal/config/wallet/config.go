// Package wallet 提供钱包与发送交易相关配置
package wallet

import (
	"github.com/scashdap/v1/pkg/types"
)

// WalletOptions 钱包配置选项
type WalletOptions struct {
	EnvPath        string `json:"env_path"`
	DerivationPath string `json:"derivation_path"`
	Passphrase     string `json:"-"`
	FeeSats        int64  `json:"fee_sats"`
	MinUTXOSats    int64  `json:"min_utxo_sats"` // 只选择金额严格大于该值的 UTXO
}

// Config 钱包配置实现
type Config struct {
	options *WalletOptions
}

// New 创建钱包配置
func New(userConfig *types.UserWalletConfig) *Config {
	options := &WalletOptions{
		EnvPath:        defaultEnvPath,
		DerivationPath: defaultDerivationPath,
		FeeSats:        defaultFeeSats,
		MinUTXOSats:    defaultMinUTXOSats,
	}
	if userConfig != nil {
		if userConfig.EnvPath != nil && *userConfig.EnvPath != "" {
			options.EnvPath = *userConfig.EnvPath
		}
		if userConfig.DerivationPath != nil && *userConfig.DerivationPath != "" {
			options.DerivationPath = *userConfig.DerivationPath
		}
		if userConfig.Passphrase != nil {
			options.Passphrase = *userConfig.Passphrase
		}
		if userConfig.FeeSats != nil {
			options.FeeSats = *userConfig.FeeSats
		}
		if userConfig.MinUTXOSats != nil {
			options.MinUTXOSats = *userConfig.MinUTXOSats
		}
	}
	return &Config{options: options}
}

// GetOptions 获取配置选项
func (c *Config) GetOptions() *WalletOptions {
	return c.options
}
