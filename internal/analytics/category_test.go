package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		description string
		want        Category
	}{
		{"Salary Deposit", CategoryIncome},
		{"Received from Alice", CategoryIncome},
		{"Grocery Store", CategoryFood},
		{"Coffee Shop", CategoryFood},
		{"Uber ride", CategoryTransportation},
		{"Shell Gas Station", CategoryTransportation},
		{"Amazon order", CategoryShopping},
		{"Monthly Rent", CategoryHousing},
		{"Electric bill", CategoryHousing},
		{"Payment to Bob", CategoryTransfers},
		{"Transfer to account 1033623433", CategoryTransfers},
		{"Mystery", CategoryOther},
		{"", CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.description))
		})
	}
}

func TestCategorize_IncomeWins(t *testing.T) {
	// Matches both Income and Food & Dining keywords
	assert.Equal(t, CategoryIncome, Categorize("Restaurant salary deposit"))
	// Matches both Income and Transfers keywords
	assert.Equal(t, CategoryIncome, Categorize("Payment received from Carol"))
}

func TestCategorize_CaseInsensitive(t *testing.T) {
	assert.Equal(t, Categorize("grocery"), Categorize("GROCERY"))
	assert.Equal(t, CategoryShopping, Categorize("RETAIL"))
}

func TestCategories(t *testing.T) {
	categories := Categories()

	assert.Len(t, categories, 7)
	assert.Equal(t, CategoryIncome, categories[0])
	assert.Equal(t, CategoryOther, categories[len(categories)-1])
}
