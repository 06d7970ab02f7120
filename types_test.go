package sep7

import "testing"

func TestAssetString(t *testing.T) {
	if got := NativeAsset().String(); got != "native" {
		t.Errorf("NativeAsset().String() = %q", got)
	}

	a := CreditAsset("USDC", "GA7QYNF7SOWQ3GLR2BGMZEHXAVIRZA4KVWLTJJFC7MGXUA74P7UJVSGZ")
	want := "USDC:GA7QYNF7SOWQ3GLR2BGMZEHXAVIRZA4KVWLTJJFC7MGXUA74P7UJVSGZ"
	if got := a.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if a.IsNative() {
		t.Error("credit asset reports IsNative")
	}
}

func TestMemoParams(t *testing.T) {
	var hash [32]byte
	hash[0] = 0xff

	tests := []struct {
		name     string
		memo     Memo
		want     string
		wantType MemoType
	}{
		{name: "text", memo: MemoText("hi"), want: "hi", wantType: MemoTypeText},
		{name: "id", memo: MemoID(7), want: "7", wantType: MemoTypeID},
		{
			name:     "hash",
			memo:     MemoHash(hash),
			want:     "/wAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA=",
			wantType: MemoTypeHash,
		},
		{
			name:     "return",
			memo:     MemoReturn(hash),
			want:     "/wAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA=",
			wantType: MemoTypeReturn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, memoType := tt.memo.Params()
			if value != tt.want || memoType != tt.wantType {
				t.Errorf("Params() = %q, %q, want %q, %q", value, memoType, tt.want, tt.wantType)
			}
		})
	}
}

func TestReplacementsStringDeduplicatesHints(t *testing.T) {
	rs := Replacements{
		{ID: "X", Path: "sourceAccount", Hint: "fee account"},
		{ID: "X", Path: "operations[0].sourceAccount", Hint: "fee account"},
	}
	want := "sourceAccount:X,operations[0].sourceAccount:X;X:fee account"
	if got := rs.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	if got := (Replacements{}).String(); got != "" {
		t.Errorf("empty String() = %q, want empty", got)
	}
}

func TestNetworkName(t *testing.T) {
	tests := []struct {
		passphrase string
		want       string
	}{
		{passphrase: NetworkPublic, want: "public"},
		{passphrase: "", want: "public"},
		{passphrase: NetworkTestnet, want: "testnet"},
		{passphrase: NetworkFuturenet, want: "futurenet"},
		{passphrase: "Some Private Network", want: ""},
	}
	for _, tt := range tests {
		if got := NetworkName(tt.passphrase); got != tt.want {
			t.Errorf("NetworkName(%q) = %q, want %q", tt.passphrase, got, tt.want)
		}
	}
}
