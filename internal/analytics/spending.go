package analytics

import (
	"github.com/eshaffer321/bank-assistant-go/internal/models"
	"github.com/shopspring/decimal"
)

// SpendingAnalysis breaks down outgoing transactions only
type SpendingAnalysis struct {
	TotalSpending    float64             `json:"total_spending"`
	TransactionCount int                 `json:"transaction_count"`
	AverageExpense   float64             `json:"average_expense"`
	LargestExpense   *Expense           `json:"largest_expense"`
	ByCategory       map[string]float64 `json:"by_category"`
	ByMonth          map[string]float64 `json:"by_month"`
	TopCategory      string             `json:"top_category"`
	RecurringPayees  map[string]int     `json:"recurring_payees"`
}

// Expense is a single outgoing transaction. Amount is the unsigned magnitude.
type Expense struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Timestamp   string  `json:"timestamp"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
}

func newExpense(txn models.Transaction) *Expense {
	return &Expense{
		Amount:      toFloat(txn.Magnitude()),
		Description: txn.Description,
		Timestamp:   txn.Timestamp,
		Date:        txn.Date(),
		Category:    string(Categorize(txn.Description)),
	}
}

// AnalyzeSpending summarizes where money went
func AnalyzeSpending(transactions []models.Transaction) *SpendingAnalysis {
	byCategory := ledger{}
	byMonth := ledger{}
	payees := map[string]int{}
	var total decimal.Decimal
	var largest *models.Transaction
	count := 0

	for i := range transactions {
		txn := &transactions[i]
		if txn.IsIncoming() {
			continue
		}

		amount := txn.Magnitude()
		count++
		total = total.Add(amount)
		byCategory.add(string(Categorize(txn.Description)), amount)
		if month, ok := txn.Month(); ok {
			byMonth.add(month, amount)
		}
		if name, ok := ExtractContact(txn.Description); ok {
			payees[name]++
		}
		if largest == nil || amount.GreaterThan(largest.Magnitude()) {
			largest = txn
		}
	}

	recurring := map[string]int{}
	for name, n := range payees {
		if n > 1 {
			recurring[name] = n
		}
	}

	analysis := &SpendingAnalysis{
		TotalSpending:    toFloat(total),
		TransactionCount: count,
		ByCategory:       byCategory.floats(),
		ByMonth:          byMonth.floats(),
		RecurringPayees:  recurring,
	}
	if largest != nil {
		analysis.LargestExpense = newExpense(*largest)
	}
	if count > 0 {
		analysis.AverageExpense = toFloat(total.Div(decimal.NewFromInt(int64(count))))
	}
	analysis.TopCategory = TopCategory(analysis.ByCategory)

	return analysis
}
