package wallet

import (
	"encoding/hex"
	"strings"
	"testing"
)

// BIP39 测试向量
const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestMnemonicManager_GenerateMnemonic(t *testing.T) {
	mm := NewMnemonicManager()

	tests := []struct {
		name      string
		strength  MnemonicStrength
		wantWords int
		wantErr   bool
	}{
		{"12 words", Mnemonic12Words, 12, false},
		{"24 words", Mnemonic24Words, 24, false},
		{"invalid strength", MnemonicStrength(100), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mnemonic, err := mm.GenerateMnemonic(tt.strength)
			if (err != nil) != tt.wantErr {
				t.Errorf("GenerateMnemonic() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if got := len(strings.Split(mnemonic, " ")); got != tt.wantWords {
				t.Errorf("GenerateMnemonic() got %d words, want %d", got, tt.wantWords)
			}
			if !mm.ValidateMnemonic(mnemonic) {
				t.Error("GenerateMnemonic() generated invalid mnemonic")
			}
		})
	}
}

func TestMnemonicManager_ValidateMnemonic(t *testing.T) {
	mm := NewMnemonicManager()

	tests := []struct {
		name     string
		mnemonic string
		want     bool
	}{
		{"test vector", testMnemonic, true},
		{"extra spaces and case", "  ABANDON abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon   about ", true},
		{"empty mnemonic", "", false},
		{"invalid word count", "abandon abandon abandon", false},
		{"invalid word", "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon invalidword", false},
		{"wrong checksum", "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mm.ValidateMnemonic(tt.mnemonic); got != tt.want {
				t.Errorf("ValidateMnemonic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMnemonicManager_ValidateMnemonicWithDetails(t *testing.T) {
	mm := NewMnemonicManager()

	tests := []struct {
		name       string
		mnemonic   string
		wantValid  bool
		wantMsgSub string
	}{
		{"valid mnemonic", testMnemonic, true, "有效"},
		{"empty mnemonic", "", false, "不能为空"},
		{"wrong word count", "abandon abandon abandon", false, "数量无效"},
		{"unknown word", "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon scash", false, "第 12 个单词"},
		{"bad checksum", "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon", false, "校验和"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotValid, gotMsg := mm.ValidateMnemonicWithDetails(tt.mnemonic)
			if gotValid != tt.wantValid {
				t.Errorf("ValidateMnemonicWithDetails() valid = %v, want %v", gotValid, tt.wantValid)
			}
			if !strings.Contains(gotMsg, tt.wantMsgSub) {
				t.Errorf("ValidateMnemonicWithDetails() msg = %v, want containing %v", gotMsg, tt.wantMsgSub)
			}
		})
	}
}

func TestMnemonicManager_MnemonicToSeed(t *testing.T) {
	mm := NewMnemonicManager()

	seed, err := mm.MnemonicToSeed(testMnemonic, "")
	if err != nil {
		t.Fatalf("MnemonicToSeed() error = %v", err)
	}
	want := "5eb00bbddcf069084889a8ab9155568165f5c453ccb85e70811aaed6f6da5fc19a5ac40b389cd370d086206dec8aa6c43daea6690f20ad3d8d48b2d2ce9e38e4"
	if got := hex.EncodeToString(seed); got != want {
		t.Errorf("MnemonicToSeed() = %s, want %s", got, want)
	}

	seedWithPass, err := mm.MnemonicToSeed(testMnemonic, "TREZOR")
	if err != nil {
		t.Fatalf("MnemonicToSeed() with passphrase error = %v", err)
	}
	if string(seed) == string(seedWithPass) {
		t.Error("MnemonicToSeed() seeds should be different with different passphrases")
	}

	if _, err := mm.MnemonicToSeed("abandon", ""); err != ErrInvalidMnemonic {
		t.Errorf("MnemonicToSeed() error = %v, want ErrInvalidMnemonic", err)
	}
}

func TestMnemonicManager_GenerateMnemonicFromEntropy(t *testing.T) {
	mm := NewMnemonicManager()

	mnemonic, err := mm.GenerateMnemonicFromEntropy(make([]byte, 16))
	if err != nil {
		t.Fatalf("GenerateMnemonicFromEntropy() error = %v", err)
	}
	if mnemonic != testMnemonic {
		t.Errorf("GenerateMnemonicFromEntropy() = %q, want %q", mnemonic, testMnemonic)
	}

	if _, err := mm.GenerateMnemonicFromEntropy(make([]byte, 15)); err == nil {
		t.Error("GenerateMnemonicFromEntropy() expected error for 15 bytes")
	}
}

func TestMnemonicManager_GetWordCount(t *testing.T) {
	mm := NewMnemonicManager()
	if got := mm.GetWordCount("  a b\tc \n d "); got != 4 {
		t.Errorf("GetWordCount() = %d, want 4", got)
	}
	if got := mm.GetWordCount(""); got != 0 {
		t.Errorf("GetWordCount() = %d, want 0", got)
	}
}
