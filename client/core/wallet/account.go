package wallet

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

// ErrUnsupportedPath 只支持 BIP84 原生隔离见证路径
var ErrUnsupportedPath = errors.New("only BIP84 (P2WPKH) derivation paths are supported")

// Account 由助记词派生出的单个 P2WPKH 账户
type Account struct {
	Path       *DerivationPath
	PrivateKey *btcec.PrivateKey
	PublicKey  *btcec.PublicKey
	Address    *btcutil.AddressWitnessPubKeyHash
	PkScript   []byte
	params     *chaincfg.Params
}

// DeriveAccount 按 BIP32 路径派生 P2WPKH 账户
// path 为空时使用 m/84'/0'/0'/0/0
func DeriveAccount(mnemonic, passphrase string, path *DerivationPath, params *chaincfg.Params) (*Account, error) {
	if params == nil {
		return nil, errors.New("chain params are required")
	}
	if path == nil {
		path = DefaultDerivationPath()
	}
	if !path.IsSegwit() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPath, path)
	}

	seed, err := NewMnemonicManager().MnemonicToSeed(mnemonic, passphrase)
	if err != nil {
		return nil, err
	}

	key, err := hdkeychain.NewMaster(seed, params)
	if err != nil {
		return nil, fmt.Errorf("create master key: %w", err)
	}
	for _, idx := range path.ToUint32Array() {
		key, err = key.Derive(idx)
		if err != nil {
			return nil, fmt.Errorf("derive %s: %w", path, err)
		}
	}

	priv, err := key.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("extract private key: %w", err)
	}
	pub := priv.PubKey()

	addr, err := btcutil.NewAddressWitnessPubKeyHash(btcutil.Hash160(pub.SerializeCompressed()), params)
	if err != nil {
		return nil, fmt.Errorf("build p2wpkh address: %w", err)
	}
	pkScript, err := txscript.PayToAddrScript(addr)
	if err != nil {
		return nil, fmt.Errorf("build p2wpkh script: %w", err)
	}

	return &Account{
		Path:       path,
		PrivateKey: priv,
		PublicKey:  pub,
		Address:    addr,
		PkScript:   pkScript,
		params:     params,
	}, nil
}

// AddressString 返回 bech32 编码的地址
func (a *Account) AddressString() string {
	return a.Address.EncodeAddress()
}

// WIF 返回压缩公钥格式的 WIF 私钥
func (a *Account) WIF() (string, error) {
	wif, err := btcutil.NewWIF(a.PrivateKey, a.params, true)
	if err != nil {
		return "", fmt.Errorf("encode wif: %w", err)
	}
	return wif.String(), nil
}

// Params 返回派生时使用的链参数
func (a *Account) Params() *chaincfg.Params {
	return a.params
}
