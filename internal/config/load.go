package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/scashdap/v1/internal/config/network"
	"github.com/scashdap/v1/pkg/types"
)

// EnvConfigPath 配置文件路径环境变量
const EnvConfigPath = "SCASHDAP_CONFIG"

// ValidationError 配置验证错误
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("配置验证失败 [%s]: %s", e.Field, e.Message)
}

// ResolvePath 确定配置文件路径：显式参数 > 环境变量
// 都未设置时返回空字符串，表示使用默认配置
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return os.Getenv(EnvConfigPath)
}

// Load 从 JSON 文件加载应用配置
// path 为空时返回空配置；显式指定的文件不存在视为错误
func Load(path string) (*types.AppConfig, error) {
	if path == "" {
		return &types.AppConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("配置文件 %s 不存在", path)
		}
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var appConfig types.AppConfig
	if err := json.Unmarshal(data, &appConfig); err != nil {
		return nil, fmt.Errorf("解析配置文件 %s 失败: %w", path, err)
	}
	if err := Validate(&appConfig); err != nil {
		return nil, err
	}
	return &appConfig, nil
}

// Validate 校验用户配置中无法由默认值兜底的字段
func Validate(appConfig *types.AppConfig) error {
	if appConfig == nil {
		return nil
	}
	var errs []error

	if appConfig.Network != nil && *appConfig.Network != "" {
		if _, err := network.Get(*appConfig.Network); err != nil {
			errs = append(errs, &ValidationError{Field: "network", Message: err.Error()})
		}
	}
	if appConfig.DAP != nil {
		if appConfig.DAP.DustValue != nil && *appConfig.DAP.DustValue < 0 {
			errs = append(errs, &ValidationError{
				Field:   "dap.dust_value",
				Message: fmt.Sprintf("数据输出金额不能为负: %d", *appConfig.DAP.DustValue),
			})
		}
		if appConfig.DAP.CompressionLevel != nil {
			if lvl := *appConfig.DAP.CompressionLevel; lvl < -2 || lvl > 9 {
				errs = append(errs, &ValidationError{
					Field:   "dap.compression_level",
					Message: fmt.Sprintf("压缩级别必须在 -2..9 之间: %d", lvl),
				})
			}
		}
		if appConfig.DAP.MaxInflateSize != nil && *appConfig.DAP.MaxInflateSize < 0 {
			errs = append(errs, &ValidationError{
				Field:   "dap.max_inflate_size",
				Message: fmt.Sprintf("解压上限不能为负: %d", *appConfig.DAP.MaxInflateSize),
			})
		}
	}
	if appConfig.Wallet != nil && appConfig.Wallet.FeeSats != nil && *appConfig.Wallet.FeeSats < 0 {
		errs = append(errs, &ValidationError{
			Field:   "wallet.fee_sats",
			Message: fmt.Sprintf("手续费不能为负: %d", *appConfig.Wallet.FeeSats),
		})
	}

	return errors.Join(errs...)
}
