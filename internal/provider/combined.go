package provider

import (
	"context"
	"fmt"

	"github.com/intradash/adminkit/internal/common/cnst"
)

// route binds a resource-name predicate to the provider that serves it.
// Routes are tried in order, so the first registration wins.
type route struct {
	match    func(resource string) bool
	provider Provider
}

// Combined layers the custom provider over the standard one. The
// custom routes are registered first, so a relationship resource never
// leaks into the flat CRUD path. Resource names claimed by both tables
// are rejected at construction instead of being resolved silently by
// order.
type Combined struct {
	routes   []route
	custom   Provider
	standard Provider
}

// NewCombined wires the combined provider and validates that the two
// resource tables do not overlap.
func NewCombined(custom, standard Provider) (*Combined, error) {
	customNames := make(map[string]struct{}, len(cnst.CustomResources()))
	for _, name := range cnst.CustomResources() {
		customNames[name] = struct{}{}
	}
	for _, name := range cnst.StandardResources() {
		if _, dup := customNames[name]; dup {
			return nil, fmt.Errorf("%w: %s", cnst.ErrDuplicateResourceName, name)
		}
	}
	return &Combined{
		routes: []route{
			{match: inSet(customNames), provider: custom},
			{match: func(string) bool { return true }, provider: standard},
		},
		custom:   custom,
		standard: standard,
	}, nil
}

func inSet(names map[string]struct{}) func(string) bool {
	return func(resource string) bool {
		_, ok := names[resource]
		return ok
	}
}

func (c *Combined) pick(resource string) Provider {
	for _, r := range c.routes {
		if r.match(resource) {
			return r.provider
		}
	}
	return c.standard
}

// APIURL returns the backend base URL.
func (c *Combined) APIURL() string {
	return c.standard.APIURL()
}

func (c *Combined) List(ctx context.Context, p ListParams) (*ListResult, error) {
	return c.pick(p.Resource).List(ctx, p)
}

func (c *Combined) GetOne(ctx context.Context, p GetOneParams) (*GetResult, error) {
	return c.pick(p.Resource).GetOne(ctx, p)
}

func (c *Combined) GetMany(ctx context.Context, p GetManyParams) (*ManyResult, error) {
	return c.pick(p.Resource).GetMany(ctx, p)
}

func (c *Combined) Create(ctx context.Context, p CreateParams) (*GetResult, error) {
	return c.pick(p.Resource).Create(ctx, p)
}

func (c *Combined) CreateMany(ctx context.Context, p CreateManyParams) (*ManyResult, error) {
	return c.pick(p.Resource).CreateMany(ctx, p)
}

func (c *Combined) Update(ctx context.Context, p UpdateParams) (*GetResult, error) {
	return c.pick(p.Resource).Update(ctx, p)
}

func (c *Combined) UpdateMany(ctx context.Context, p UpdateManyParams) (*ManyResult, error) {
	return c.pick(p.Resource).UpdateMany(ctx, p)
}

func (c *Combined) Delete(ctx context.Context, p DeleteParams) (*GetResult, error) {
	return c.pick(p.Resource).Delete(ctx, p)
}

func (c *Combined) DeleteMany(ctx context.Context, p DeleteManyParams) (*ManyResult, error) {
	return c.pick(p.Resource).DeleteMany(ctx, p)
}

// Custom goes to the URL-routed provider directly: the standard
// provider has no custom endpoints.
func (c *Combined) Custom(ctx context.Context, p CustomParams) (*GetResult, error) {
	return c.custom.Custom(ctx, p)
}
