package wallet

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
)

// MnemonicEnvKey .env 文件中保存助记词的键
const MnemonicEnvKey = "MY_MNEMONIC"

// EnvStore 以 KEY=VALUE 形式在 .env 文件中保存助记词
type EnvStore struct {
	path string
}

// NewEnvStore 创建 .env 存储
func NewEnvStore(path string) *EnvStore {
	return &EnvStore{path: path}
}

// Path 返回文件路径
func (s *EnvStore) Path() string {
	return s.path
}

// LoadMnemonic 读取助记词，文件或键不存在时 ok 为 false
func (s *EnvStore) LoadMnemonic() (mnemonic string, ok bool, err error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %s: %w", s.path, err)
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		key, value, found := parseEnvLine(scanner.Text())
		if found && key == MnemonicEnvKey && value != "" {
			return NormalizeMnemonic(value), true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", false, fmt.Errorf("scan %s: %w", s.path, err)
	}
	return "", false, nil
}

// SaveMnemonic 写入助记词，保留文件中的其他键
func (s *EnvStore) SaveMnemonic(mnemonic string) error {
	mnemonic = NormalizeMnemonic(mnemonic)
	if !NewMnemonicManager().ValidateMnemonic(mnemonic) {
		return ErrInvalidMnemonic
	}

	var lines []string
	data, err := os.ReadFile(s.path)
	switch {
	case err == nil:
		lines = strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	case errors.Is(err, os.ErrNotExist):
	default:
		return fmt.Errorf("read %s: %w", s.path, err)
	}

	entry := fmt.Sprintf("%s=%q", MnemonicEnvKey, mnemonic)
	replaced := false
	for i, line := range lines {
		if key, _, found := parseEnvLine(line); found && key == MnemonicEnvKey {
			lines[i] = entry
			replaced = true
		}
	}
	if !replaced {
		lines = append(lines, entry)
	}

	content := strings.TrimLeft(strings.Join(lines, "\n"), "\n") + "\n"
	if err := os.WriteFile(s.path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// parseEnvLine 解析一行 KEY=VALUE，忽略注释与 export 前缀
func parseEnvLine(line string) (key, value string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimPrefix(line, "export ")

	key, value, ok = strings.Cut(line, "=")
	if !ok {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if len(value) >= 2 {
		if (value[0] == '"' && value[len(value)-1] == '"') || (value[0] == '\'' && value[len(value)-1] == '\'') {
			value = value[1 : len(value)-1]
		}
	}
	return key, value, true
}
