package constants

// Category is one of the fixed labels a transaction can be filed under.
type Category string

const (
	Income        Category = "Income"
	Groceries     Category = "Groceries"
	Utilities     Category = "Utilities"
	RentMortgage  Category = "Rent/Mortgage"
	DiningOut     Category = "Dining Out"
	Shopping      Category = "Shopping"
	Transport     Category = "Transport"
	Entertainment Category = "Entertainment"
	Health        Category = "Health"
	Investment    Category = "Investment"
	Transfer      Category = "Transfer"
	Subscription  Category = "Subscription"

	// Other is the fallback when no category applies unambiguously.
	Other Category = "Other"
)

// Categories lists every allowed label in the order the prompt presents them.
var Categories = []Category{
	Income,
	Groceries,
	Utilities,
	RentMortgage,
	DiningOut,
	Shopping,
	Transport,
	Entertainment,
	Health,
	Investment,
	Transfer,
	Subscription,
	Other,
}

func AsStringSlice() []string {
	result := make([]string, len(Categories))
	for i, cat := range Categories {
		result[i] = string(cat)
	}
	return result
}
