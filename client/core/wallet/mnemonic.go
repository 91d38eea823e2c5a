// Package wallet provides the mnemonic wallet used to fund data transactions.
package wallet

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

// MnemonicStrength 助记词强度
type MnemonicStrength int

const (
	// Mnemonic12Words 12个助记词 (128 bits 熵)
	Mnemonic12Words MnemonicStrength = 128
	// Mnemonic24Words 24个助记词 (256 bits 熵)
	Mnemonic24Words MnemonicStrength = 256
)

// ErrInvalidMnemonic 助记词校验失败
var ErrInvalidMnemonic = errors.New("invalid mnemonic")

// MnemonicManager 助记词管理器
type MnemonicManager struct {
	wordSet map[string]struct{}
}

// NewMnemonicManager 创建新的助记词管理器
func NewMnemonicManager() *MnemonicManager {
	words := bip39.GetWordList()
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return &MnemonicManager{wordSet: set}
}

// GenerateMnemonic 生成助记词
func (m *MnemonicManager) GenerateMnemonic(strength MnemonicStrength) (string, error) {
	switch strength {
	case Mnemonic12Words, Mnemonic24Words:
	default:
		return "", fmt.Errorf("invalid mnemonic strength: %d, must be 128 or 256", strength)
	}

	entropy := make([]byte, int(strength)/8)
	if _, err := rand.Read(entropy); err != nil {
		return "", fmt.Errorf("failed to generate entropy: %w", err)
	}
	return m.GenerateMnemonicFromEntropy(entropy)
}

// GenerateMnemonicFromEntropy 从指定熵生成助记词
func (m *MnemonicManager) GenerateMnemonicFromEntropy(entropy []byte) (string, error) {
	if len(entropy) < 16 || len(entropy) > 32 || len(entropy)%4 != 0 {
		return "", errors.New("entropy must be 16, 20, 24, 28, or 32 bytes")
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("failed to generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

// ValidateMnemonic 验证助记词是否有效
func (m *MnemonicManager) ValidateMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(NormalizeMnemonic(mnemonic))
}

// ValidateMnemonicWithDetails 验证助记词并返回可展示给用户的原因
func (m *MnemonicManager) ValidateMnemonicWithDetails(mnemonic string) (bool, string) {
	mnemonic = NormalizeMnemonic(mnemonic)
	if mnemonic == "" {
		return false, "助记词不能为空"
	}

	words := strings.Split(mnemonic, " ")
	switch len(words) {
	case 12, 15, 18, 21, 24:
	default:
		return false, fmt.Sprintf("助记词数量无效: %d，应为 12, 15, 18, 21 或 24", len(words))
	}

	for i, word := range words {
		if _, ok := m.wordSet[word]; !ok {
			return false, fmt.Sprintf("第 %d 个单词 '%s' 不在 BIP39 词表中", i+1, word)
		}
	}

	if !bip39.IsMnemonicValid(mnemonic) {
		return false, "校验和验证失败，请检查助记词是否正确"
	}
	return true, "助记词有效"
}

// MnemonicToSeed 将助记词转换为 BIP39 种子
func (m *MnemonicManager) MnemonicToSeed(mnemonic, passphrase string) ([]byte, error) {
	mnemonic = NormalizeMnemonic(mnemonic)
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}
	return bip39.NewSeed(mnemonic, passphrase), nil
}

// GetWordCount 获取助记词单词数量
func (m *MnemonicManager) GetWordCount(mnemonic string) int {
	return len(strings.Fields(mnemonic))
}

// NormalizeMnemonic 小写并合并连续空白
func NormalizeMnemonic(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
