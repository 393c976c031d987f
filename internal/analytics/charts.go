package analytics

// Chart is a series chart: line, pie or bar
type Chart struct {
	Type  string             `json:"type"`
	Data  map[string]float64 `json:"data"`
	Title string             `json:"title"`
}

// Gauge is a single-value chart
type Gauge struct {
	Type  string `json:"type"`
	Value int    `json:"value"`
	Title string `json:"title"`
}

// Visualizations is the chart bundle returned with insights
type Visualizations struct {
	MonthlySpending  Chart `json:"monthly_spending_chart"`
	MonthlyIncome    Chart `json:"monthly_income_chart"`
	CategoryPie      Chart `json:"category_pie_chart"`
	IncomeVsExpenses Chart `json:"income_vs_expense_chart"`
	HealthGauge      Gauge `json:"financial_health_gauge"`
}

// Summary is the headline view of an analytics result
type Summary struct {
	Balance      float64 `json:"balance"`
	HealthScore  int     `json:"health_score"`
	HealthStatus string  `json:"health_status"`
	NetChange    float64 `json:"net_change"`
	TopCategory  string  `json:"top_category"`
}

// Visualize shapes analytics into chart data
func Visualize(a *Analytics) *Visualizations {
	return &Visualizations{
		MonthlySpending: Chart{
			Type:  "line",
			Data:  nonNil(a.SpendingByMonth),
			Title: "Monthly Spending Trends",
		},
		MonthlyIncome: Chart{
			Type:  "line",
			Data:  nonNil(a.IncomeByMonth),
			Title: "Monthly Income Trends",
		},
		CategoryPie: Chart{
			Type:  "pie",
			Data:  nonNil(a.TransactionCategories),
			Title: "Spending by Category",
		},
		IncomeVsExpenses: Chart{
			Type: "bar",
			Data: map[string]float64{
				"Income":   a.TotalIncome,
				"Expenses": a.TotalSpending,
				"Net":      a.NetChange,
			},
			Title: "Income vs Expenses Overview",
		},
		HealthGauge: Gauge{
			Type:  "gauge",
			Value: a.FinancialHealthScore,
			Title: "Financial Health Score",
		},
	}
}

// Summarize extracts the headline figures
func Summarize(a *Analytics) *Summary {
	return &Summary{
		Balance:      a.CurrentBalance,
		HealthScore:  a.FinancialHealthScore,
		HealthStatus: HealthStatus(a.FinancialHealthScore),
		NetChange:    a.NetChange,
		TopCategory:  TopCategory(a.TransactionCategories),
	}
}

func nonNil(m map[string]float64) map[string]float64 {
	if m == nil {
		return map[string]float64{}
	}
	return m
}
