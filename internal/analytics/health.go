package analytics

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	// HealthBalanceTarget is the balance at which the balance component saturates
	HealthBalanceTarget = 5000
	// HealthDiversityTarget is the number of categories at which diversity saturates
	HealthDiversityTarget = 5

	savingsWeight   = 0.4
	balanceWeight   = 0.4
	diversityWeight = 0.2
)

// HealthScore combines savings rate, balance and category diversity into a 0-100 score
func HealthScore(income, spending, balance decimal.Decimal, categories int) int {
	savingsRate := 0.0
	if income.IsPositive() {
		savingsRate = clamp01(income.Sub(spending).Div(income).InexactFloat64())
	}
	balanceRatio := clamp01(balance.Div(decimal.NewFromInt(HealthBalanceTarget)).InexactFloat64())
	diversity := clamp01(float64(categories) / HealthDiversityTarget)

	score := 100 * (savingsWeight*savingsRate + balanceWeight*balanceRatio + diversityWeight*diversity)
	return int(math.Round(score))
}

// HealthStatus labels a score for display
func HealthStatus(score int) string {
	switch {
	case score >= 80:
		return "excellent"
	case score >= 60:
		return "good"
	case score >= 40:
		return "fair"
	default:
		return "needs_attention"
	}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
