package wallet

import (
	"reflect"
	"testing"
)

func TestDefaultDerivationPath(t *testing.T) {
	dp := DefaultDerivationPath()
	if got := dp.String(); got != "m/84'/0'/0'/0/0" {
		t.Errorf("String() = %s, want m/84'/0'/0'/0/0", got)
	}
	if !dp.IsSegwit() {
		t.Error("default path should be segwit")
	}
}

func TestParseDerivationPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    *DerivationPath
		wantErr bool
	}{
		{"bip84 default", "m/84'/0'/0'/0/0", &DerivationPath{Purpose: 84}, false},
		{"without m prefix", "84'/0'/1'/1/7", &DerivationPath{Purpose: 84, Account: 1, Change: 1, AddressIndex: 7}, false},
		{"h notation", "m/84h/0h/0h/0/3", &DerivationPath{Purpose: 84, AddressIndex: 3}, false},
		{"bip44", "m/44'/0'/0'/0/0", &DerivationPath{Purpose: 44}, false},
		{"unsupported purpose", "m/49'/0'/0'/0/0", nil, true},
		{"too short", "m/84'/0'/0'", nil, true},
		{"purpose not hardened", "m/84/0'/0'/0/0", nil, true},
		{"change hardened", "m/84'/0'/0'/0'/0", nil, true},
		{"change out of range", "m/84'/0'/0'/2/0", nil, true},
		{"not a number", "m/84'/0'/x'/0/0", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDerivationPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDerivationPath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseDerivationPath() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDerivationPath_RoundTrip(t *testing.T) {
	dp := DefaultDerivationPath().WithAddressIndex(9)
	parsed, err := ParseDerivationPath(dp.String())
	if err != nil {
		t.Fatalf("ParseDerivationPath() error = %v", err)
	}
	if !reflect.DeepEqual(parsed, dp) {
		t.Errorf("round trip = %+v, want %+v", parsed, dp)
	}
}

func TestDerivationPath_ToUint32Array(t *testing.T) {
	got := DefaultDerivationPath().ToUint32Array()
	want := []uint32{84 + HardenedOffset, HardenedOffset, HardenedOffset, 0, 0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ToUint32Array() = %v, want %v", got, want)
	}
}
