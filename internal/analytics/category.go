package analytics

import "strings"

// Category is a coarse spending bucket derived from a transaction description
type Category string

const (
	CategoryIncome         Category = "Income"
	CategoryFood           Category = "Food & Dining"
	CategoryTransportation Category = "Transportation"
	CategoryShopping       Category = "Shopping"
	CategoryHousing        Category = "Housing"
	CategoryTransfers      Category = "Transfers"
	CategoryOther          Category = "Other"
)

// Rules are checked in order; the first rule with a matching keyword wins.
var categoryRules = []struct {
	category Category
	keywords []string
}{
	{CategoryIncome, []string{"salary", "deposit", "income", "received from"}},
	{CategoryFood, []string{"grocery", "food", "restaurant", "coffee"}},
	{CategoryTransportation, []string{"gas", "fuel", "transport", "uber", "taxi"}},
	{CategoryShopping, []string{"shopping", "retail", "amazon", "store"}},
	{CategoryHousing, []string{"rent", "mortgage", "utilities", "electric", "water"}},
	{CategoryTransfers, []string{"transfer", "sent to", "payment"}},
}

// Categorize maps a description to a category. It never fails; unmatched text is Other.
func Categorize(description string) Category {
	lower := strings.ToLower(description)
	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.category
			}
		}
	}
	return CategoryOther
}

// Categories returns every category in match order, Other last
func Categories() []Category {
	categories := make([]Category, 0, len(categoryRules)+1)
	for _, rule := range categoryRules {
		categories = append(categories, rule.category)
	}
	return append(categories, CategoryOther)
}
