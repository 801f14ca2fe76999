package expander

import "testing"

func TestNormalizeManufacturer(t *testing.T) {
	tests := []struct{ in, want string }{
		{"microbt", "MicroBT"},
		{"ICERIVER", "IceRiver"},
		{"ipollo", "iPollo"},
		{" wind  miner", "Wind Miner"},
		{"bitmain tech", "Bitmain Tech"},
		{"sealminer", "Sealminer"},
	}
	for _, tt := range tests {
		if got := NormalizeManufacturer(tt.in); got != tt.want {
			t.Errorf("NormalizeManufacturer(%q): Expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestNormalizeAlgorithm(t *testing.T) {
	tests := []struct{ in, want string }{
		{"sha256", "SHA-256"},
		{"SHA-256d", "SHA-256"},
		{"scrypt", "Scrypt"},
		{"Etchash/Ethash", "Ethash"},
		{"kHeavyHash", "KHeavyHash"},
		{"Blake2S", "Blake2S"},
		{"Unknown", "Unknown"},
	}
	for _, tt := range tests {
		if got := NormalizeAlgorithm(tt.in); got != tt.want {
			t.Errorf("NormalizeAlgorithm(%q): Expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
