package services

import "testing"

func TestNetRevenue(t *testing.T) {
	cases := []struct {
		gross, share, want float64
	}{
		{100, 80, 80},
		{10, 70, 7},
		{4.444, 80, 3.56},   // 3.5552 rounds to 3.56
		{0.01, 50, 0.01},    // 0.005 rounds half away from zero
		{0.333, 33.3, 0.11}, // 0.110889
		{10, 0, 0},
		{10, 100, 10},
		// clamping keeps 0 <= net <= gross
		{10, 150, 10},
		{10, -5, 0},
		{-3, 80, 0},
	}
	for _, tc := range cases {
		if got := NetRevenue(tc.gross, tc.share); got != tc.want {
			t.Fatalf("NetRevenue(%v, %v) = %v; want %v", tc.gross, tc.share, got, tc.want)
		}
	}
}

func TestNetRevenue_NeverExceedsGross(t *testing.T) {
	grosses := []float64{0, 0.01, 0.99, 1.005, 123.456, 99999.99}
	shares := []float64{0, 0.1, 33.3, 50, 99.9, 100}
	for _, g := range grosses {
		for _, s := range shares {
			net := NetRevenue(g, s)
			if net < 0 || net > g+0.005 { // rounding may add up to half a cent
				t.Fatalf("NetRevenue(%v, %v) = %v violates 0 <= net <= gross", g, s, net)
			}
		}
	}
}

func TestDeriveCTR(t *testing.T) {
	cases := []struct {
		clicks, impressions int64
		want                float64
	}{
		{0, 0, 0},
		{5, 0, 0}, // zero impressions never divide
		{5, 100, 5},
		{20, 300, 6.67},
		{1, 3, 33.33},
		{0, 100, 0},
	}
	for _, tc := range cases {
		if got := DeriveCTR(tc.clicks, tc.impressions); got != tc.want {
			t.Fatalf("DeriveCTR(%d, %d) = %v; want %v", tc.clicks, tc.impressions, got, tc.want)
		}
	}
}

func TestDeriveRPM(t *testing.T) {
	cases := []struct {
		revenue     float64
		impressions int64
		want        float64
	}{
		{0, 0, 0},
		{10, 0, 0},
		{10, 100, 100},
		{30, 300, 100},
		{1.5, 1000, 1.5},
		{0.07, 350, 0.2},
	}
	for _, tc := range cases {
		if got := DeriveRPM(tc.revenue, tc.impressions); got != tc.want {
			t.Fatalf("DeriveRPM(%v, %d) = %v; want %v", tc.revenue, tc.impressions, got, tc.want)
		}
	}
}

func TestRoundMoney(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{1.005, 1.01},
		{3.5552, 3.56},
		{-1.005, -1.01},
		{2.1, 2.1},
	}
	for _, tc := range cases {
		if got := RoundMoney(tc.in); got != tc.want {
			t.Fatalf("RoundMoney(%v) = %v; want %v", tc.in, got, tc.want)
		}
	}
}
