package returns

import "testing"

func TestPercentOf(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{0.125, "12.5%"},
		{8.946807, "894.7%"},
		{0.12345, "12.3%"},
		{0.0125, "1.2%"},
		{0.0625, "6.2%"},
		{0.1875, "18.8%"},
		{-0.0625, "-6.2%"},
		{0, "0.0%"},
	}
	for _, tt := range tests {
		if got := PercentOf(tt.rate).String(); got != tt.want {
			t.Errorf("PercentOf(%v) = %q, want %q", tt.rate, got, tt.want)
		}
	}
}
