package catering

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Ziv1972/Catering-services-ai-pro-sub000/internal/drill"
)

// FetcherFor adapts the client to a drill.FetchFunc for one hierarchy.
// Each level maps to an endpoint and a table layout; budget and meal
// levels share one endpoint each and aggregate client-side.
func (c *Client) FetcherFor(h Hierarchy) drill.FetchFunc {
	return func(ctx context.Context, level drill.Level, dctx drill.Context) (drill.Data, error) {
		switch level {
		case LevelCostMonthly:
			body, err := c.get(ctx, pathCostMonthly, yearQuery(dctx))
			if err != nil {
				return nil, err
			}
			return parseMonthly(body, dctx, monthlyLayoutCost), nil

		case LevelCostBySite:
			body, err := c.get(ctx, pathCostBySite, monthQuery(dctx))
			if err != nil {
				return nil, err
			}
			return parseSites(body, siteLayoutCost), nil

		case LevelCostByCategory:
			body, err := c.get(ctx, pathCostByCategory, siteQuery(dctx))
			if err != nil {
				return nil, err
			}
			return parseCategories(body, categoryLayoutCost), nil

		case LevelCostProducts:
			body, err := c.get(ctx, pathCostProducts, productsQuery(dctx))
			if err != nil {
				return nil, err
			}
			return parseProducts(body, productLayoutCost), nil

		case LevelQtyMonthly:
			body, err := c.get(ctx, pathQtyMonthly, yearQuery(dctx))
			if err != nil {
				return nil, err
			}
			return parseMonthly(body, dctx, monthlyLayoutQty), nil

		case LevelQtyBySite:
			body, err := c.get(ctx, pathQtyBySite, monthQuery(dctx))
			if err != nil {
				return nil, err
			}
			return parseSites(body, siteLayoutQty), nil

		case LevelQtyByCategory:
			body, err := c.get(ctx, pathQtyByCategory, siteQuery(dctx))
			if err != nil {
				return nil, err
			}
			return parseCategories(body, categoryLayoutQty), nil

		case LevelQtyProducts:
			// The cost products payload carries quantity fields too; the
			// quantity hierarchy renders them quantity-first.
			body, err := c.get(ctx, pathCostProducts, productsQuery(dctx))
			if err != nil {
				return nil, err
			}
			return parseProducts(body, productLayoutQty), nil

		case LevelQtyCategoryTrend:
			body, err := c.get(ctx, pathQtyCategoryMo, trendQuery(dctx))
			if err != nil {
				return nil, err
			}
			return parseCategoryTrend(body, dctx), nil

		case LevelQtyProductCompare:
			body, err := c.get(ctx, pathQtyProductMo, compareQuery(dctx))
			if err != nil {
				return nil, err
			}
			return parseProductCompare(body, dctx), nil

		case LevelBudgetSuppliers, LevelBudgetSites, LevelBudgetMonths:
			body, err := c.get(ctx, pathBudgetVsActual, budgetQuery(dctx))
			if err != nil {
				return nil, err
			}
			return aggregateBudgets(body, level, dctx)

		case LevelMealMonthly, LevelMealBySite, LevelMealDaily:
			body, err := c.get(ctx, pathHistoricalMeals, mealsQuery(dctx))
			if err != nil {
				return nil, err
			}
			return aggregateMeals(body, level, dctx)

		default:
			return nil, fmt.Errorf("hierarchy %s has no level %q", h.Name, level)
		}
	}
}

// yearQuery builds the parameters shared by all root levels: the year and
// the optional supplier filter.
func yearQuery(c drill.Context) url.Values {
	q := url.Values{}
	q.Set("year", strconv.Itoa(c.Int(KeyYear)))
	if c.Has(KeySupplier) {
		q.Set("supplier_id", strconv.Itoa(c.Int(KeySupplier)))
	}
	return q
}

func monthQuery(c drill.Context) url.Values {
	q := yearQuery(c)
	q.Set("month", strconv.Itoa(c.Int(KeyMonth)))
	return q
}

func siteQuery(c drill.Context) url.Values {
	q := monthQuery(c)
	q.Set("site_id", strconv.Itoa(c.Int(KeySite)))
	return q
}

func productsQuery(c drill.Context) url.Values {
	q := siteQuery(c)
	q.Set("category_name", c.String(KeyCategory))
	return q
}

// trendQuery drops the month: the category trend spans the whole year.
func trendQuery(c drill.Context) url.Values {
	q := yearQuery(c)
	q.Set("site_id", strconv.Itoa(c.Int(KeySite)))
	q.Set("category_name", c.String(KeyCategory))
	return q
}

// compareQuery carries the fan-out selection as a comma-joined list, in
// toggle order.
func compareQuery(c drill.Context) url.Values {
	q := trendQuery(c)
	q.Set("product_names", strings.Join(c.Strings(KeyProducts), ","))
	return q
}

func budgetQuery(c drill.Context) url.Values {
	q := url.Values{}
	q.Set("year", strconv.Itoa(c.Int(KeyYear)))
	if c.Has(KeySite) {
		q.Set("site_id", strconv.Itoa(c.Int(KeySite)))
	}
	return q
}

// mealsQuery bounds the flat meal records to the navigated year and, once
// drilled, the site. Month filtering happens during aggregation.
func mealsQuery(c drill.Context) url.Values {
	year := c.Int(KeyYear)
	q := url.Values{}
	q.Set("start_date", fmt.Sprintf("%04d-01-01", year))
	q.Set("end_date", fmt.Sprintf("%04d-12-31", year))
	if c.Has(KeySite) {
		q.Set("site_id", strconv.Itoa(c.Int(KeySite)))
	}
	return q
}
