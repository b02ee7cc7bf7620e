package catering

import (
	"context"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"
)

// PreflightResult summarizes the probes run before the explorer starts.
type PreflightResult struct {
	// Server is the verified server identity.
	Server ServerInfo

	// Healthy reports whether the health endpoint answered "healthy".
	Healthy bool

	// Suppliers is the number of suppliers known to the server, used to
	// validate the --supplier filter early.
	Suppliers int
}

// Preflight verifies the server before opening a drill-down session: the
// version gate, the health endpoint, and the supplier roster are probed
// concurrently and the first failure aborts the rest.
func (c *Client) Preflight(ctx context.Context) (PreflightResult, error) {
	var result PreflightResult

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		info, err := c.CheckCompat(gCtx)
		if err != nil {
			return err
		}
		result.Server = info
		return nil
	})

	g.Go(func() error {
		body, err := c.get(gCtx, pathHealth, nil)
		if err != nil {
			return err
		}
		result.Healthy = gjson.Get(body, "status").String() == "healthy"
		return nil
	})

	g.Go(func() error {
		body, err := c.get(gCtx, pathSuppliers, nil)
		if err != nil {
			return err
		}
		result.Suppliers = len(gjson.Parse(body).Array())
		return nil
	})

	if err := g.Wait(); err != nil {
		return PreflightResult{}, err
	}
	return result, nil
}

// Supplier is one entry of the supplier roster.
type Supplier struct {
	// ID is the numeric supplier identifier used in filters.
	ID int

	// Name is the display name.
	Name string
}

// Suppliers fetches the supplier roster, used to resolve the --supplier
// flag to an ID and display name.
func (c *Client) Suppliers(ctx context.Context) ([]Supplier, error) {
	body, err := c.get(ctx, pathSuppliers, nil)
	if err != nil {
		return nil, err
	}
	var suppliers []Supplier
	for _, item := range gjson.Parse(body).Array() {
		suppliers = append(suppliers, Supplier{
			ID:   int(item.Get("id").Int()),
			Name: item.Get("name").String(),
		})
	}
	return suppliers, nil
}
