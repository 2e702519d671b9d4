// Package dictionary holds the curated expense categories and the keywords
// used to recognise them in free-text descriptions.
package dictionary

import "github.com/tinoosan/smartbudget/internal/slug"

const (
	// DefaultCategory is assigned to expenses no keyword matches.
	DefaultCategory = "Other"
	// IncomeCategory is the fixed label of every income transaction.
	IncomeCategory = "Income"
	// NoExpenses labels periods without any expense.
	NoExpenses = "No expenses"
)

// CategoryDef is one entry of the curated keyword table.
type CategoryDef struct {
	Code     string   `json:"code"`
	Label    string   `json:"label"`
	Keywords []string `json:"keywords"`
}

// curated is ordered: when a description contains keywords of several
// categories the first entry wins.
var curated = []CategoryDef{
	{Label: "Food", Keywords: []string{"grocery", "supermarket", "market", "restaurant", "ifood", "bakery", "snack", "lunch", "delivery"}},
	{Label: "Transportation", Keywords: []string{"uber", "99", "bus", "fuel", "gasoline", "subway", "metro", "toll", "taxi"}},
	{Label: "Housing", Keywords: []string{"rent", "condo", "electricity", "water", "internet", "gas"}},
	{Label: "Health", Keywords: []string{"pharmacy", "doctor", "appointment", "health insurance", "exam"}},
	{Label: "Education", Keywords: []string{"course", "college", "book", "school", "bootcamp"}},
	{Label: "Leisure", Keywords: []string{"cinema", "show", "trip", "travel", "game", "netflix", "spotify"}},
	{Label: "Subscriptions", Keywords: []string{"subscription", "saas", "monthly fee", "annual fee"}},
}

// Categories returns a copy of the curated table in match order.
func Categories() []CategoryDef {
	out := make([]CategoryDef, 0, len(curated))
	for _, c := range curated {
		kw := make([]string, len(c.Keywords))
		copy(kw, c.Keywords)
		out = append(out, CategoryDef{Code: slug.Slugify(c.Label), Label: c.Label, Keywords: kw})
	}
	return out
}

// IsCurated reports whether label names one of the curated categories.
func IsCurated(label string) bool {
	for _, c := range curated {
		if c.Label == label {
			return true
		}
	}
	return false
}
