package catering

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/tidwall/gjson"

	"github.com/Ziv1972/Catering-services-ai-pro-sub000/internal/drill"
)

// budgetLine is one supplier/site/month row of the vs-actual payload.
type budgetLine struct {
	supplierID   int
	supplierName string
	siteID       int
	siteName     string
	month        int
	monthName    string
	budget       float64
	actual       float64
}

func parseBudgetLines(body string) []budgetLine {
	var lines []budgetLine
	for _, it := range gjson.Get(body, "items").Array() {
		lines = append(lines, budgetLine{
			supplierID:   int(it.Get("supplier_id").Int()),
			supplierName: it.Get("supplier_name").String(),
			siteID:       int(it.Get("site_id").Int()),
			siteName:     it.Get("site_name").String(),
			month:        int(it.Get("month").Int()),
			monthName:    it.Get("month_name").String(),
			budget:       it.Get("budget").Float(),
			actual:       it.Get("actual").Float(),
		})
	}
	return lines
}

// budgetColumns builds the budget table layout around its leading column.
func budgetColumns(first Column) []Column {
	return []Column{
		first,
		{Title: "Budget", Width: 14, Align: AlignRight},
		{Title: "Actual", Width: 14, Align: AlignRight},
		{Title: "Variance", Width: 14, Align: AlignRight},
		{Title: "% Used", Width: 8, Align: AlignRight},
	}
}

func budgetCells(name string, budget, actual float64) []string {
	pct := 0.0
	if budget > 0 {
		pct = actual / budget * 100
	}
	return []string{
		name,
		FormatMoney(budget),
		FormatMoney(actual),
		FormatMoney(budget - actual),
		FormatPercent(pct),
	}
}

// aggregateBudgets groups the flat vs-actual payload to the requested
// level. The API has no per-level endpoints, so drilling narrows the same
// payload client-side: suppliers sum everything, sites sum one supplier,
// months list one supplier at one site. The footer totals are recomputed
// from the rows actually shown so month-range filtering stays consistent.
func aggregateBudgets(body string, level drill.Level, c drill.Context) (*Table, error) {
	lines := parseBudgetLines(body)

	kept := lines[:0]
	for _, l := range lines {
		if !monthInRange(l.month, c) {
			continue
		}
		if level != LevelBudgetSuppliers && l.supplierID != c.Int(KeySupplier) {
			continue
		}
		if level == LevelBudgetMonths && l.siteID != c.Int(KeySite) {
			continue
		}
		kept = append(kept, l)
	}

	switch level {
	case LevelBudgetSuppliers:
		return groupBudgets(kept, Column{Title: "Supplier", Width: 24},
			func(l budgetLine) (string, string, drill.Context) {
				return strconv.Itoa(l.supplierID), l.supplierName, drill.Context{
					KeySupplier:     l.supplierID,
					KeySupplierName: l.supplierName,
				}
			}), nil

	case LevelBudgetSites:
		return groupBudgets(kept, colSite,
			func(l budgetLine) (string, string, drill.Context) {
				return strconv.Itoa(l.siteID), l.siteName, drill.Context{
					KeySite:     l.siteID,
					KeySiteName: l.siteName,
				}
			}), nil

	case LevelBudgetMonths:
		return groupBudgetMonths(kept), nil

	default:
		return nil, fmt.Errorf("level %q is not a budget level", level)
	}
}

// groupBudgets sums lines by the key function and renders one row per
// group, sorted by display name.
func groupBudgets(lines []budgetLine, first Column, key func(budgetLine) (id, name string, delta drill.Context)) *Table {
	type group struct {
		name   string
		delta  drill.Context
		budget float64
		actual float64
	}
	groups := map[string]*group{}
	for _, l := range lines {
		id, name, delta := key(l)
		g, ok := groups[id]
		if !ok {
			g = &group{name: name, delta: delta}
			groups[id] = g
		}
		g.budget += l.budget
		g.actual += l.actual
	}

	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if groups[ids[i]].name != groups[ids[j]].name {
			return groups[ids[i]].name < groups[ids[j]].name
		}
		return ids[i] < ids[j]
	})

	t := &Table{Columns: budgetColumns(first)}
	var totalBudget, totalActual float64
	for _, id := range ids {
		g := groups[id]
		t.Rows = append(t.Rows, Row{
			ID:    id,
			Cells: budgetCells(g.name, g.budget, g.actual),
			Delta: g.delta,
		})
		totalBudget += g.budget
		totalActual += g.actual
	}
	if len(t.Rows) > 0 {
		t.Footer = budgetCells("Total", totalBudget, totalActual)
	}
	return t
}

// groupBudgetMonths renders the month leaf of the budget hierarchy, one
// row per calendar month in order.
func groupBudgetMonths(lines []budgetLine) *Table {
	type group struct {
		name   string
		budget float64
		actual float64
	}
	months := map[int]*group{}
	for _, l := range lines {
		g, ok := months[l.month]
		if !ok {
			g = &group{name: l.monthName}
			months[l.month] = g
		}
		g.budget += l.budget
		g.actual += l.actual
	}

	t := &Table{Columns: budgetColumns(colMonth)}
	var totalBudget, totalActual float64
	for month := 1; month <= 12; month++ {
		g, ok := months[month]
		if !ok {
			continue
		}
		t.Rows = append(t.Rows, Row{
			ID:    strconv.Itoa(month),
			Cells: budgetCells(g.name, g.budget, g.actual),
		})
		totalBudget += g.budget
		totalActual += g.actual
	}
	if len(t.Rows) > 0 {
		t.Footer = budgetCells("Total", totalBudget, totalActual)
	}
	return t
}

// mealRecord is one historical meal entry.
type mealRecord struct {
	siteID   int
	siteName string
	date     time.Time
	meals    int64
	cost     float64
	notes    string
}

func parseMealRecords(body string) []mealRecord {
	var records []mealRecord
	for _, it := range gjson.Parse(body).Array() {
		date, err := parseISODate(it.Get("date").String())
		if err != nil {
			continue
		}
		records = append(records, mealRecord{
			siteID:   int(it.Get("site_id").Int()),
			siteName: it.Get("site_name").String(),
			date:     date,
			meals:    it.Get("meal_count").Int(),
			cost:     it.Get("cost").Float(),
			notes:    it.Get("notes").String(),
		})
	}
	return records
}

func parseISODate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func mealColumns(first Column, withNotes bool) []Column {
	cols := []Column{
		first,
		{Title: "Meals", Width: 10, Align: AlignRight},
		{Title: "Total Cost", Width: 14, Align: AlignRight},
	}
	if withNotes {
		cols = append(cols, Column{Title: "Notes", Width: 30})
	}
	return cols
}

// aggregateMeals groups the flat meal records to the requested level:
// months across the year, sites within a month, then the raw daily
// entries for one site.
func aggregateMeals(body string, level drill.Level, c drill.Context) (*Table, error) {
	records := parseMealRecords(body)

	kept := records[:0]
	for _, r := range records {
		month := int(r.date.Month())
		if !monthInRange(month, c) {
			continue
		}
		if level != LevelMealMonthly && month != c.Int(KeyMonth) {
			continue
		}
		if level == LevelMealDaily && r.siteID != c.Int(KeySite) {
			continue
		}
		kept = append(kept, r)
	}

	switch level {
	case LevelMealMonthly:
		return groupMealMonths(kept), nil
	case LevelMealBySite:
		return groupMealSites(kept), nil
	case LevelMealDaily:
		return listMealDays(kept), nil
	default:
		return nil, fmt.Errorf("level %q is not a meal level", level)
	}
}

func groupMealMonths(records []mealRecord) *Table {
	type group struct {
		meals int64
		cost  float64
	}
	months := map[int]*group{}
	for _, r := range records {
		m := int(r.date.Month())
		g, ok := months[m]
		if !ok {
			g = &group{}
			months[m] = g
		}
		g.meals += r.meals
		g.cost += r.cost
	}

	t := &Table{Columns: mealColumns(colMonth, false)}
	var totalMeals int64
	var totalCost float64
	for month := 1; month <= 12; month++ {
		g, ok := months[month]
		if !ok {
			continue
		}
		name := time.Month(month).String()
		t.Rows = append(t.Rows, Row{
			ID: strconv.Itoa(month),
			Cells: []string{
				name,
				FormatCount(g.meals),
				FormatMoney(g.cost),
			},
			Delta: drill.Context{
				KeyMonth:     month,
				KeyMonthName: name,
			},
		})
		totalMeals += g.meals
		totalCost += g.cost
	}
	if len(t.Rows) > 0 {
		t.Footer = []string{"Total", FormatCount(totalMeals), FormatMoney(totalCost)}
	}
	return t
}

func groupMealSites(records []mealRecord) *Table {
	type group struct {
		name  string
		meals int64
		cost  float64
	}
	sites := map[int]*group{}
	for _, r := range records {
		g, ok := sites[r.siteID]
		if !ok {
			g = &group{name: r.siteName}
			sites[r.siteID] = g
		}
		g.meals += r.meals
		g.cost += r.cost
	}

	ids := make([]int, 0, len(sites))
	for id := range sites {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if sites[ids[i]].name != sites[ids[j]].name {
			return sites[ids[i]].name < sites[ids[j]].name
		}
		return ids[i] < ids[j]
	})

	t := &Table{Columns: mealColumns(colSite, false)}
	var totalMeals int64
	var totalCost float64
	for _, id := range ids {
		g := sites[id]
		t.Rows = append(t.Rows, Row{
			ID: strconv.Itoa(id),
			Cells: []string{
				g.name,
				FormatCount(g.meals),
				FormatMoney(g.cost),
			},
			Delta: drill.Context{
				KeySite:     id,
				KeySiteName: g.name,
			},
		})
		totalMeals += g.meals
		totalCost += g.cost
	}
	if len(t.Rows) > 0 {
		t.Footer = []string{"Total", FormatCount(totalMeals), FormatMoney(totalCost)}
	}
	return t
}

func listMealDays(records []mealRecord) *Table {
	sort.Slice(records, func(i, j int) bool {
		return records[i].date.Before(records[j].date)
	})

	t := &Table{Columns: mealColumns(Column{Title: "Date", Width: 12}, true)}
	var totalMeals int64
	var totalCost float64
	for _, r := range records {
		day := r.date.Format("2006-01-02")
		t.Rows = append(t.Rows, Row{
			ID: day,
			Cells: []string{
				day,
				FormatCount(r.meals),
				FormatMoney(r.cost),
				r.notes,
			},
		})
		totalMeals += r.meals
		totalCost += r.cost
	}
	if len(t.Rows) > 0 {
		t.Footer = []string{"Total", FormatCount(totalMeals), FormatMoney(totalCost), ""}
	}
	return t
}
