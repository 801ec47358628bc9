// Package services: revenue arithmetic.
//
// All money math goes through shopspring/decimal so that per-record rounding
// is exact and reproducible; float64 only appears at the storage boundary.
package services

import "github.com/shopspring/decimal"

// NetRevenue computes round(gross × share / 100, 2). Shares outside [0,100]
// are clamped so the ledger invariant 0 <= net <= gross always holds.
func NetRevenue(gross, share float64) float64 {
	if gross < 0 {
		gross = 0
	}
	if share < 0 {
		share = 0
	} else if share > 100 {
		share = 100
	}
	return decimal.NewFromFloat(gross).
		Mul(decimal.NewFromFloat(share)).
		Div(decimal.NewFromInt(100)).
		Round(2).
		InexactFloat64()
}

// DeriveCTR computes clicks/impressions as a percentage, rounded to two
// decimals. Zero impressions yield zero, never a division error.
func DeriveCTR(clicks, impressions int64) float64 {
	if impressions <= 0 {
		return 0
	}
	return decimal.NewFromInt(clicks).
		Div(decimal.NewFromInt(impressions)).
		Mul(decimal.NewFromInt(100)).
		Round(2).
		InexactFloat64()
}

// DeriveRPM computes revenue per thousand impressions, rounded to two
// decimals. Zero impressions yield zero.
func DeriveRPM(revenue float64, impressions int64) float64 {
	if impressions <= 0 {
		return 0
	}
	return decimal.NewFromFloat(revenue).
		Div(decimal.NewFromInt(impressions)).
		Mul(decimal.NewFromInt(1000)).
		Round(2).
		InexactFloat64()
}

// RoundMoney rounds a revenue amount to two decimals. Used when folding
// summed ledger values into overview rows.
func RoundMoney(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
