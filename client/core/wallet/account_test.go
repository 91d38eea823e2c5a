package wallet

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"

	"github.com/scashdap/v1/internal/config/network"
)

func TestDeriveAccount_BIP84Vector(t *testing.T) {
	acct, err := DeriveAccount(testMnemonic, "", nil, &chaincfg.MainNetParams)
	if err != nil {
		t.Fatalf("DeriveAccount() error = %v", err)
	}

	if got := acct.AddressString(); got != "bc1qcr8te4kr609gcawutmrza0j4xv80jy8z306fyu" {
		t.Errorf("address = %s", got)
	}
	wantPub := "0330d54fd0dd420a6e5f8d3624f5f3482cae350f79d5f0753bf5beef9c2d91af3c"
	if got := hex.EncodeToString(acct.PublicKey.SerializeCompressed()); got != wantPub {
		t.Errorf("pubkey = %s, want %s", got, wantPub)
	}

	// P2WPKH: OP_0 <20 字节>
	if len(acct.PkScript) != 22 || acct.PkScript[0] != 0x00 || acct.PkScript[1] != 0x14 {
		t.Errorf("unexpected pkScript %x", acct.PkScript)
	}
}

func TestDeriveAccount_SecondIndex(t *testing.T) {
	acct, err := DeriveAccount(testMnemonic, "", DefaultDerivationPath().WithAddressIndex(1), &chaincfg.MainNetParams)
	if err != nil {
		t.Fatalf("DeriveAccount() error = %v", err)
	}
	if got := acct.AddressString(); got != "bc1qnjg0jd8228aq7egyzacy8cys3knf9xvrerkf9g" {
		t.Errorf("address = %s", got)
	}
}

func TestDeriveAccount_ScashNetwork(t *testing.T) {
	params := network.MustGet(network.Mainnet).ChainParams()

	scash, err := DeriveAccount(testMnemonic, "", nil, params)
	if err != nil {
		t.Fatalf("DeriveAccount() error = %v", err)
	}
	btc, err := DeriveAccount(testMnemonic, "", nil, &chaincfg.MainNetParams)
	if err != nil {
		t.Fatalf("DeriveAccount() error = %v", err)
	}

	if !strings.HasPrefix(scash.AddressString(), "scash1q") {
		t.Errorf("address = %s, want scash1q prefix", scash.AddressString())
	}
	if !bytes.Equal(scash.Address.WitnessProgram(), btc.Address.WitnessProgram()) {
		t.Error("witness program should not depend on the address prefix")
	}

	wif, err := scash.WIF()
	if err != nil {
		t.Fatalf("WIF() error = %v", err)
	}
	if wif == "" {
		t.Error("WIF() returned empty string")
	}
}

func TestDeriveAccount_Errors(t *testing.T) {
	if _, err := DeriveAccount("not a mnemonic", "", nil, &chaincfg.MainNetParams); !errors.Is(err, ErrInvalidMnemonic) {
		t.Errorf("error = %v, want ErrInvalidMnemonic", err)
	}

	legacy := &DerivationPath{Purpose: BIP44Purpose}
	if _, err := DeriveAccount(testMnemonic, "", legacy, &chaincfg.MainNetParams); !errors.Is(err, ErrUnsupportedPath) {
		t.Errorf("error = %v, want ErrUnsupportedPath", err)
	}

	if _, err := DeriveAccount(testMnemonic, "", nil, nil); err == nil {
		t.Error("expected error for nil params")
	}
}
