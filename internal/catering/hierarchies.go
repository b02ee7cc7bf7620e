package catering

import (
	"fmt"
	"strings"

	"github.com/Ziv1972/Catering-services-ai-pro-sub000/internal/drill"
)

// Levels of the cost hierarchy: yearly months -> sites -> categories ->
// products.
const (
	LevelCostMonthly    drill.Level = "cost/monthly"
	LevelCostBySite     drill.Level = "cost/by-site"
	LevelCostByCategory drill.Level = "cost/by-category"
	LevelCostProducts   drill.Level = "cost/products"
)

// Levels of the quantity hierarchy. It mirrors the cost hierarchy and
// adds two trend views: a per-category monthly trend reached with the
// trend key, and a per-product comparison reached by fanning out a
// multi-selection at the products level.
const (
	LevelQtyMonthly        drill.Level = "quantity/monthly"
	LevelQtyBySite         drill.Level = "quantity/by-site"
	LevelQtyByCategory     drill.Level = "quantity/by-category"
	LevelQtyProducts       drill.Level = "quantity/products"
	LevelQtyCategoryTrend  drill.Level = "quantity/category-monthly"
	LevelQtyProductCompare drill.Level = "quantity/product-monthly"
)

// Levels of the supplier budget hierarchy, aggregated client-side from
// the budget vs-actual payload: suppliers -> sites -> months.
const (
	LevelBudgetSuppliers drill.Level = "budget/suppliers"
	LevelBudgetSites     drill.Level = "budget/sites"
	LevelBudgetMonths    drill.Level = "budget/months"
)

// Levels of the historical meals hierarchy, aggregated client-side from
// the flat meal records: months -> sites -> days.
const (
	LevelMealMonthly drill.Level = "meal/monthly"
	LevelMealBySite  drill.Level = "meal/by-site"
	LevelMealDaily   drill.Level = "meal/daily"
)

// LevelSpec describes one level of a hierarchy.
type LevelSpec struct {
	// Title is the breadcrumb segment and table heading for the level.
	Title string

	// Next is the level entering a row drills into, "" at a leaf.
	Next drill.Level

	// Trend is the alternate level the trend key drills into, "" when
	// the level has no trend view.
	Trend drill.Level
}

// Hierarchy is the declarative wiring for one navigable dimension. The
// explorer reads it to know what Enter, the trend key, and fan-out do at
// each level; the fetcher reads it implicitly through level tags.
type Hierarchy struct {
	// Name is the CLI-facing identifier ("costs", "quantities", ...).
	Name string

	// Title is the human heading shown above the table.
	Title string

	// Root is the level the hierarchy opens at.
	Root drill.Level

	// MultiSelect is the level supporting selection, "" when none.
	MultiSelect drill.Level

	// FanOut is the level a fan-out from MultiSelect drills into.
	FanOut drill.Level

	// SelectionKey is the context key carrying the fan-out selection.
	SelectionKey string

	// Levels maps every level tag of the hierarchy to its spec.
	Levels map[drill.Level]LevelSpec
}

// Spec returns the LevelSpec for a level of this hierarchy.
func (h Hierarchy) Spec(level drill.Level) LevelSpec {
	return h.Levels[level]
}

// Costs is the cost analysis hierarchy.
func Costs() Hierarchy {
	return Hierarchy{
		Name:  "costs",
		Title: "Cost Analysis",
		Root:  LevelCostMonthly,
		Levels: map[drill.Level]LevelSpec{
			LevelCostMonthly:    {Title: "Monthly Costs", Next: LevelCostBySite},
			LevelCostBySite:     {Title: "Costs by Site", Next: LevelCostByCategory},
			LevelCostByCategory: {Title: "Costs by Category", Next: LevelCostProducts},
			LevelCostProducts:   {Title: "Products"},
		},
	}
}

// Quantities is the quantity analysis hierarchy, including the category
// trend view and the multi-select product comparison.
func Quantities() Hierarchy {
	return Hierarchy{
		Name:         "quantities",
		Title:        "Quantity Analysis",
		Root:         LevelQtyMonthly,
		MultiSelect:  LevelQtyProducts,
		FanOut:       LevelQtyProductCompare,
		SelectionKey: KeyProducts,
		Levels: map[drill.Level]LevelSpec{
			LevelQtyMonthly:        {Title: "Monthly Quantities", Next: LevelQtyBySite},
			LevelQtyBySite:         {Title: "Quantities by Site", Next: LevelQtyByCategory},
			LevelQtyByCategory:     {Title: "Quantities by Category", Next: LevelQtyProducts, Trend: LevelQtyCategoryTrend},
			LevelQtyProducts:       {Title: "Products"},
			LevelQtyCategoryTrend:  {Title: "Category Trend"},
			LevelQtyProductCompare: {Title: "Product Comparison"},
		},
	}
}

// Budgets is the supplier budget vs actual hierarchy.
func Budgets() Hierarchy {
	return Hierarchy{
		Name:  "budgets",
		Title: "Supplier Budgets",
		Root:  LevelBudgetSuppliers,
		Levels: map[drill.Level]LevelSpec{
			LevelBudgetSuppliers: {Title: "Budget by Supplier", Next: LevelBudgetSites},
			LevelBudgetSites:     {Title: "Budget by Site", Next: LevelBudgetMonths},
			LevelBudgetMonths:    {Title: "Budget by Month"},
		},
	}
}

// Meals is the historical meal counts hierarchy.
func Meals() Hierarchy {
	return Hierarchy{
		Name:  "meals",
		Title: "Historical Meals",
		Root:  LevelMealMonthly,
		Levels: map[drill.Level]LevelSpec{
			LevelMealMonthly: {Title: "Meals by Month", Next: LevelMealBySite},
			LevelMealBySite:  {Title: "Meals by Site", Next: LevelMealDaily},
			LevelMealDaily:   {Title: "Daily Meals"},
		},
	}
}

// Hierarchies returns all navigable hierarchies in menu order.
func Hierarchies() []Hierarchy {
	return []Hierarchy{Costs(), Quantities(), Budgets(), Meals()}
}

// HierarchyByName resolves a CLI identifier to its hierarchy.
func HierarchyByName(name string) (Hierarchy, error) {
	for _, h := range Hierarchies() {
		if h.Name == name {
			return h, nil
		}
	}
	names := make([]string, 0, len(Hierarchies()))
	for _, h := range Hierarchies() {
		names = append(names, h.Name)
	}
	return Hierarchy{}, fmt.Errorf("unknown hierarchy %q (valid: %s)", name, strings.Join(names, ", "))
}

// Breadcrumb renders the navigation trail for a context accumulated in
// hierarchy h, e.g. "Cost Analysis 2025 > June > North Kitchen > produce".
// Segments appear in the order the hierarchy drills through them.
func (h Hierarchy) Breadcrumb(c drill.Context) string {
	root := fmt.Sprintf("%s %d", h.Title, c.Int(KeyYear))
	if h.Name != "budgets" {
		// Outside the budget hierarchy the supplier is a filter, not a
		// drill segment.
		if name := c.String(KeySupplierName); name != "" {
			root += fmt.Sprintf(" (%s)", name)
		}
	}
	parts := []string{root}
	if h.Name == "budgets" {
		if name := c.String(KeySupplierName); name != "" {
			parts = append(parts, name)
		}
		if name := c.String(KeySiteName); name != "" {
			parts = append(parts, name)
		}
		if name := c.String(KeyMonthName); name != "" {
			parts = append(parts, name)
		}
		return strings.Join(parts, " > ")
	}
	if c.Has(KeyMonth) {
		parts = append(parts, c.String(KeyMonthName))
	}
	if name := c.String(KeySiteName); name != "" {
		parts = append(parts, name)
	}
	if label := c.String(KeyCategoryLabel); label != "" {
		parts = append(parts, label)
	} else if cat := c.String(KeyCategory); cat != "" {
		parts = append(parts, cat)
	}
	if products := c.Strings(KeyProducts); len(products) > 0 {
		parts = append(parts, strings.Join(products, ", "))
	}
	if day := c.String(KeyDay); day != "" {
		parts = append(parts, day)
	}
	return strings.Join(parts, " > ")
}
