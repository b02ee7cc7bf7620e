package catering

import (
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/Ziv1972/Catering-services-ai-pro-sub000/internal/drill"
)

// Column widths shared across table layouts.
//
//nolint:mnd // Render widths are inherently literal.
var (
	colMonth    = Column{Title: "Month", Width: 12}
	colSite     = Column{Title: "Site", Width: 24}
	colCategory = Column{Title: "Category", Width: 24}
	colProduct  = Column{Title: "Product", Width: 30}
	colCost     = Column{Title: "Total Cost", Width: 16, Align: AlignRight}
	colQty      = Column{Title: "Quantity", Width: 14, Align: AlignRight}
	colInvoices = Column{Title: "Invoices", Width: 10, Align: AlignRight}
	colItems    = Column{Title: "Items", Width: 8, Align: AlignRight}
	colOrders   = Column{Title: "Orders", Width: 8, Align: AlignRight}
	colAvgPrice = Column{Title: "Avg Price", Width: 12, Align: AlignRight}
)

// layout pairs a table's columns with the cell extractor applied to each
// payload item. Cost and quantity hierarchies share payload shapes but
// order their numeric columns differently.
type layout struct {
	columns []Column
	cells   func(item gjson.Result) []string
}

var monthlyLayoutCost = layout{
	columns: []Column{colMonth, colCost, colInvoices},
	cells: func(it gjson.Result) []string {
		return []string{
			it.Get("month_name").String(),
			FormatMoney(it.Get("total_cost").Float()),
			FormatCount(it.Get("invoice_count").Int()),
		}
	},
}

var monthlyLayoutQty = layout{
	columns: []Column{colMonth, colQty, colInvoices},
	cells: func(it gjson.Result) []string {
		return []string{
			it.Get("month_name").String(),
			FormatQuantity(it.Get("total_quantity").Float()),
			FormatCount(it.Get("invoice_count").Int()),
		}
	},
}

var siteLayoutCost = layout{
	columns: []Column{colSite, colCost, colInvoices},
	cells: func(it gjson.Result) []string {
		return []string{
			it.Get("site_name").String(),
			FormatMoney(it.Get("total_cost").Float()),
			FormatCount(it.Get("invoice_count").Int()),
		}
	},
}

var siteLayoutQty = layout{
	columns: []Column{colSite, colQty, colInvoices},
	cells: func(it gjson.Result) []string {
		return []string{
			it.Get("site_name").String(),
			FormatQuantity(it.Get("total_quantity").Float()),
			FormatCount(it.Get("invoice_count").Int()),
		}
	},
}

var categoryLayoutCost = layout{
	columns: []Column{colCategory, colCost, colQty, colItems},
	cells: func(it gjson.Result) []string {
		return []string{
			categoryLabel(it),
			FormatMoney(it.Get("total_cost").Float()),
			FormatQuantity(categoryQty(it)),
			FormatCount(it.Get("item_count").Int()),
		}
	},
}

var categoryLayoutQty = layout{
	columns: []Column{colCategory, colQty, colCost, colItems},
	cells: func(it gjson.Result) []string {
		return []string{
			categoryLabel(it),
			FormatQuantity(categoryQty(it)),
			FormatMoney(it.Get("total_cost").Float()),
			FormatCount(it.Get("item_count").Int()),
		}
	},
}

var productLayoutCost = layout{
	columns: []Column{colProduct, colCost, colQty, colAvgPrice, colOrders},
	cells: func(it gjson.Result) []string {
		return []string{
			it.Get("product_name").String(),
			FormatMoney(it.Get("total_cost").Float()),
			FormatQuantity(it.Get("total_quantity").Float()),
			FormatUnitPrice(it.Get("avg_unit_price").Float()),
			FormatCount(it.Get("order_count").Int()),
		}
	},
}

var productLayoutQty = layout{
	columns: []Column{colProduct, colQty, colCost, colAvgPrice, colOrders},
	cells: func(it gjson.Result) []string {
		return []string{
			it.Get("product_name").String(),
			FormatQuantity(it.Get("total_quantity").Float()),
			FormatMoney(it.Get("total_cost").Float()),
			FormatUnitPrice(it.Get("avg_unit_price").Float()),
			FormatCount(it.Get("order_count").Int()),
		}
	},
}

// categoryLabel prefers the English display name, falling back to the
// Hebrew one and then the canonical group name.
func categoryLabel(it gjson.Result) string {
	if label := it.Get("display_name_en").String(); label != "" {
		return label
	}
	if label := it.Get("display_name_he").String(); label != "" {
		return label
	}
	return it.Get("category_name").String()
}

// categoryQty reads the quantity field, which the cost endpoints name
// total_qty and the quantity endpoints name total_quantity.
func categoryQty(it gjson.Result) float64 {
	if q := it.Get("total_quantity"); q.Exists() {
		return q.Float()
	}
	return it.Get("total_qty").Float()
}

// monthInRange applies the client-side from/to month bounds, when set.
func monthInRange(month int, c drill.Context) bool {
	if from := c.Int(KeyFromMonth); from > 0 && month < from {
		return false
	}
	if to := c.Int(KeyToMonth); to > 0 && month > to {
		return false
	}
	return true
}

// parseMonthly builds the root month table. Rows drill into their month.
func parseMonthly(body string, c drill.Context, l layout) *Table {
	t := &Table{Columns: l.columns}
	for _, it := range gjson.Get(body, "items").Array() {
		month := int(it.Get("month").Int())
		if !monthInRange(month, c) {
			continue
		}
		t.Rows = append(t.Rows, Row{
			ID:    strconv.Itoa(month),
			Cells: l.cells(it),
			Delta: drill.Context{
				KeyMonth:     month,
				KeyMonthName: it.Get("month_name").String(),
			},
		})
	}
	return t
}

// parseSites builds the per-site table. Rows drill into their site.
func parseSites(body string, l layout) *Table {
	t := &Table{Columns: l.columns}
	for _, it := range gjson.Get(body, "items").Array() {
		siteID := int(it.Get("site_id").Int())
		t.Rows = append(t.Rows, Row{
			ID:    strconv.Itoa(siteID),
			Cells: l.cells(it),
			Delta: drill.Context{
				KeySite:     siteID,
				KeySiteName: it.Get("site_name").String(),
			},
		})
	}
	return t
}

// parseCategories builds the per-category table. Rows drill into their
// category; the canonical group name feeds the API, the display label
// feeds the breadcrumb.
func parseCategories(body string, l layout) *Table {
	t := &Table{Columns: l.columns}
	for _, it := range gjson.Get(body, "items").Array() {
		name := it.Get("category_name").String()
		t.Rows = append(t.Rows, Row{
			ID:    name,
			Cells: l.cells(it),
			Delta: drill.Context{
				KeyCategory:      name,
				KeyCategoryLabel: categoryLabel(it),
			},
		})
	}
	return t
}

// parseProducts builds the product leaf table. Rows carry no drill delta;
// at the quantity products level their IDs feed the selection set.
func parseProducts(body string, l layout) *Table {
	t := &Table{Columns: l.columns}
	for _, it := range gjson.Get(body, "items").Array() {
		t.Rows = append(t.Rows, Row{
			ID:    it.Get("product_name").String(),
			Cells: l.cells(it),
		})
	}
	return t
}

// parseCategoryTrend builds the full-year monthly trend for one category.
func parseCategoryTrend(body string, c drill.Context) *Table {
	t := &Table{
		Columns: []Column{
			colMonth,
			colQty,
			colCost,
			{Title: "Products", Width: 10, Align: AlignRight},
		},
	}
	for _, it := range gjson.Get(body, "items").Array() {
		month := int(it.Get("month").Int())
		if !monthInRange(month, c) {
			continue
		}
		t.Rows = append(t.Rows, Row{
			ID: strconv.Itoa(month),
			Cells: []string{
				it.Get("month_name").String(),
				FormatQuantity(it.Get("total_quantity").Float()),
				FormatMoney(it.Get("total_cost").Float()),
				FormatCount(it.Get("product_count").Int()),
			},
		})
	}
	return t
}

// parseProductCompare pivots the fan-out series payload into one row per
// month with a quantity column per selected product, in selection order.
func parseProductCompare(body string, c drill.Context) *Table {
	series := gjson.Get(body, "series").Array()

	t := &Table{Columns: []Column{colMonth}}
	for _, s := range series {
		t.Columns = append(t.Columns, Column{
			Title: s.Get("product_name").String(),
			Width: 14,
			Align: AlignRight,
		})
	}

	// months[m][i] is product i's quantity cell in month m.
	months := map[int][]string{}
	names := map[int]string{}
	for i, s := range series {
		for _, m := range s.Get("months").Array() {
			month := int(m.Get("month").Int())
			if !monthInRange(month, c) {
				continue
			}
			if _, ok := months[month]; !ok {
				months[month] = make([]string, len(series))
				names[month] = m.Get("month_name").String()
			}
			months[month][i] = FormatQuantity(m.Get("total_quantity").Float())
		}
	}

	for month := 1; month <= 12; month++ {
		cells, ok := months[month]
		if !ok {
			continue
		}
		for i, cell := range cells {
			if cell == "" {
				cells[i] = "-"
			}
		}
		t.Rows = append(t.Rows, Row{
			ID:    strconv.Itoa(month),
			Cells: append([]string{names[month]}, cells...),
		})
	}
	return t
}
