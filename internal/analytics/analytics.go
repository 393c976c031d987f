// Package analytics derives spending statistics, a health score and chart data from a
// user's transactions. Everything here is a pure function of its inputs.
package analytics

import (
	"sort"

	"github.com/eshaffer321/bank-assistant-go/internal/models"
	"github.com/shopspring/decimal"
)

// NoTransactionsMessage is reported when there is nothing to analyze
const NoTransactionsMessage = "No transaction data available for analysis"

// ContactStat aggregates the transactions attributed to one contact
type ContactStat struct {
	Count       int     `json:"count"`
	TotalAmount float64 `json:"total_amount"`
	Type        string  `json:"type"`
}

// Analytics is the derived view of a user's finances
type Analytics struct {
	CurrentBalance        float64                 `json:"current_balance"`
	TotalTransactions     int                     `json:"total_transactions"`
	SpendingByMonth       map[string]float64      `json:"spending_by_month"`
	IncomeByMonth         map[string]float64      `json:"income_by_month"`
	TransactionCategories map[string]float64      `json:"transaction_categories"`
	ContactAnalysis       map[string]*ContactStat `json:"contact_analysis"`
	TotalIncome           float64                 `json:"total_income"`
	TotalSpending         float64                 `json:"total_spending"`
	NetChange             float64                 `json:"net_change"`
	FinancialHealthScore  int                     `json:"financial_health_score"`
	Message               string                  `json:"message,omitempty"`
}

// ledger accumulates money in decimal before it is exported as float64
type ledger map[string]decimal.Decimal

func (l ledger) add(key string, amount decimal.Decimal) {
	l[key] = l[key].Add(amount)
}

func (l ledger) floats() map[string]float64 {
	out := make(map[string]float64, len(l))
	for k, v := range l {
		out[k] = toFloat(v)
	}
	return out
}

// Analyze computes monthly buckets, category totals, contact stats and the health score
func Analyze(transactions []models.Transaction, balance decimal.Decimal) *Analytics {
	a := &Analytics{
		CurrentBalance:    toFloat(balance),
		TotalTransactions: len(transactions),
		ContactAnalysis:   map[string]*ContactStat{},
	}

	if len(transactions) == 0 {
		a.Message = NoTransactionsMessage
	}

	spending := ledger{}
	income := ledger{}
	categories := ledger{}
	contactTotals := ledger{}
	var totalIncome, totalSpending decimal.Decimal

	for _, txn := range transactions {
		amount := txn.Magnitude()

		// Totals include transactions with a malformed timestamp
		month, bucketed := txn.Month()
		if txn.IsIncoming() {
			totalIncome = totalIncome.Add(amount)
			if bucketed {
				income.add(month, amount)
			}
		} else {
			totalSpending = totalSpending.Add(amount)
			if bucketed {
				spending.add(month, amount)
			}
		}

		categories.add(string(Categorize(txn.Description)), amount)

		if name, ok := ExtractContact(txn.Description); ok {
			stat, exists := a.ContactAnalysis[name]
			if !exists {
				stat = &ContactStat{Type: flowType(txn)}
				a.ContactAnalysis[name] = stat
			}
			stat.Count++
			contactTotals.add(name, amount)
		}
	}

	for name, total := range contactTotals {
		a.ContactAnalysis[name].TotalAmount = toFloat(total)
	}

	a.SpendingByMonth = spending.floats()
	a.IncomeByMonth = income.floats()
	a.TransactionCategories = categories.floats()
	a.TotalIncome = toFloat(totalIncome)
	a.TotalSpending = toFloat(totalSpending)
	a.NetChange = toFloat(totalIncome.Sub(totalSpending))
	a.FinancialHealthScore = HealthScore(totalIncome, totalSpending, balance, len(categories))

	return a
}

// MonthlyTotals returns what was spent and received in the given YYYY-MM month
func MonthlyTotals(transactions []models.Transaction, month string) (spent, received decimal.Decimal) {
	for _, txn := range transactions {
		m, ok := txn.Month()
		if !ok || m != month {
			continue
		}
		if txn.IsIncoming() {
			received = received.Add(txn.Magnitude())
		} else {
			spent = spent.Add(txn.Magnitude())
		}
	}
	return spent, received
}

// TopCategory returns the category with the largest total. Ties go to the
// alphabetically smallest name; an empty map yields "No data".
func TopCategory(totals map[string]float64) string {
	if len(totals) == 0 {
		return "No data"
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	top := names[0]
	for _, name := range names[1:] {
		if totals[name] > totals[top] {
			top = name
		}
	}
	return top
}

func flowType(txn models.Transaction) string {
	if txn.IsIncoming() {
		return "income"
	}
	return "expense"
}

func toFloat(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
