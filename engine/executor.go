package engine

import (
	"fmt"
	"log"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/geekcolab/shopstats/query"
	"github.com/geekcolab/shopstats/shop"
)

// ============================================================================
// EXECUTOR — Dispatcher + Placeholder Resolution
// ============================================================================
// Entry point: Execute(spec, shop, opts...)
//
// Pipeline:
//   1. Normalize the QuerySpec (query name, defaults)
//   2. Dispatch to the query handler
//   3. Shape the answer (items / table / text)
//   4. Resolve reply template placeholders
//
// The shop graph is only read. All computation is local.
// ============================================================================

// run carries one execution's resolved parameters.
type run struct {
	spec        QuerySpec
	shop        *shop.Shop
	cfg         *config
	k           int
	minDiscount float64
	vars        map[string]string
}

type handler struct {
	info  QueryInfo
	title string
	reply string
	exec  func(r *run, res *Result) error
}

var handlers = map[string]handler{
	QueryTopCustomers: {
		info: QueryInfo{
			Name:        QueryTopCustomers,
			Description: "Customers who spent the most in a year on orders discounted by at least a threshold",
			Params:      []string{"year", "minDiscount", "k"},
		},
		title: "Top customers by discounted spend",
		reply: "Top {count} customers in {year} with at least {min_discount} discount: {items}.",
		exec:  execTopCustomers,
	},
	QueryMostTaxedProducts: {
		info: QueryInfo{
			Name:        QueryMostTaxedProducts,
			Description: "Distinct products from the year's most-taxed payments",
			Params:      []string{"year", "k"},
		},
		title: "Most taxed products",
		reply: "Most taxed products in {year}: {items}.",
		exec:  execMostTaxedProducts,
	},
	QueryTopTaxCustomers: {
		info: QueryInfo{
			Name:        QueryTopTaxCustomers,
			Description: "Distinct customers behind the year's k most-taxed payments",
			Params:      []string{"year", "k"},
		},
		title: "Top tax-paying customers",
		reply: "Customers behind the top {k} taxed payments in {year}: {items}.",
		exec:  execTopTaxCustomers,
	},
	QueryProductNames: {
		info: QueryInfo{
			Name:        QueryProductNames,
			Description: "Every product name in catalog order",
		},
		title: "Products",
		reply: "{count} products: {items}.",
		exec:  execProductNames,
	},
	QueryProductsByTag: {
		info: QueryInfo{
			Name:        QueryProductsByTag,
			Description: "Products whose tag matches exactly",
			Params:      []string{"tag"},
		},
		title: "Products tagged {tag}",
		reply: "{count} products tagged {tag}: {items}.",
		exec:  execProductsByTag,
	},
	QueryMinLimitProducts: {
		info: QueryInfo{
			Name:        QueryMinLimitProducts,
			Description: "Products carrying a \"min\" inventory limit",
		},
		title: "Products with a min limit",
		reply: "{count} products have a min limit: {items}.",
		exec:  execMinLimitProducts,
	},
	QueryLimitConflicts: {
		info: QueryInfo{
			Name:        QueryLimitConflicts,
			Description: "Products with more than one limit of the same type",
		},
		title: "Limit conflicts",
		reply: "{count} products carry duplicate limit types: {items}.",
		exec:  execLimitConflicts,
	},
	QueryBreakdown: {
		info: QueryInfo{
			Name:        QueryBreakdown,
			Description: "Aggregate an order measure, optionally grouped by up to two dimensions",
			Params:      []string{"year", "groupBy", "measure", "aggregation", "sortBy", "filters", "k"},
		},
		title: "Order breakdown",
		exec:  execBreakdown,
	},
}

var queryOrder = []string{
	QueryTopCustomers,
	QueryMostTaxedProducts,
	QueryTopTaxCustomers,
	QueryProductNames,
	QueryProductsByTag,
	QueryMinLimitProducts,
	QueryLimitConflicts,
	QueryBreakdown,
}

// Queries lists the supported queries in a stable order.
func Queries() []QueryInfo {
	out := make([]QueryInfo, 0, len(queryOrder))
	for _, name := range queryOrder {
		out = append(out, handlers[name].info)
	}
	return out
}

// Execute runs a QuerySpec against a shop and returns a render-ready Result.
//
// Options:
//   - WithCurrency(unit) — prefix for money values
//   - WithDefaultLimit(k) — used when QuerySpec.K is 0
//   - WithDefaultMinDiscount(pct) — used when QuerySpec.MinDiscount is nil
//   - WithSchema(cfg) — breakdown dimensions and measures
func Execute(spec QuerySpec, s *shop.Shop, opts ...Option) (*Result, error) {
	cfg := applyOptions(opts)
	spec = NormalizeQuerySpec(spec)

	h, ok := handlers[spec.Query]
	if !ok {
		return nil, newQueryError("execute", spec.Query, ErrUnknownQuery)
	}
	if s == nil {
		return nil, newQueryError("execute", spec.Query, ErrNoShop)
	}

	r := &run{
		spec:        spec,
		shop:        s,
		cfg:         cfg,
		k:           spec.K,
		minDiscount: cfg.DefaultMinDiscount,
	}
	if r.k == 0 {
		r.k = cfg.DefaultLimit
	}
	if spec.MinDiscount != nil {
		r.minDiscount = *spec.MinDiscount
	}
	r.vars = map[string]string{
		"{year}":         strconv.Itoa(spec.Year),
		"{k}":            strconv.Itoa(r.k),
		"{min_discount}": FormatPercent(r.minDiscount),
		"{tag}":          spec.Tag,
		"{currency}":     cfg.Currency,
	}

	log.Printf("🔧 Shopstats: query=%s year=%d k=%d", spec.Query, spec.Year, r.k)

	title := spec.Title
	if title == "" {
		title = resolve(h.title, r.vars)
	}
	res := &Result{
		Success:     true,
		Query:       spec.Query,
		Title:       title,
		Items:       []string{},
		DisplayUnit: cfg.Currency,
	}
	if err := h.exec(r, res); err != nil {
		return nil, newQueryError("execute", spec.Query, err)
	}

	if res.Type == "" {
		res.Type = "list"
	}
	r.vars["{count}"] = strconv.Itoa(len(res.Items))
	r.vars["{items}"] = strings.Join(res.Items, ", ")

	switch {
	case spec.Reply != "":
		res.Reply = ResolvePlaceholders(spec.Reply, r.vars)
	case res.Reply == "" && len(res.Items) == 0 && res.TableData == nil:
		res.Type = "text"
		res.Reply = "No results."
	case res.Reply == "":
		res.Reply = ResolvePlaceholders(h.reply, r.vars)
	}

	log.Printf("📊 Shopstats: %s → %d items", spec.Query, len(res.Items))
	return res, nil
}

// ============================================================================
// QUERY HANDLERS
// ============================================================================

func execTopCustomers(r *run, res *Result) error {
	ranked := query.Limit(query.RankCustomers(r.shop.People(), r.spec.Year, r.minDiscount), r.k)
	for _, c := range ranked {
		res.Items = append(res.Items, c.Name)
	}
	if len(ranked) > 0 {
		res.Type = "table"
		res.TableData = customerSpendTable(res.Title, ranked, r.cfg.Currency)
	}
	return nil
}

func execMostTaxedProducts(r *run, res *Result) error {
	res.Items = query.TopKMostTaxedProducts(r.shop, r.spec.Year, r.k)
	return nil
}

func execTopTaxCustomers(r *run, res *Result) error {
	res.Items = query.TopTaxPayingCustomers(r.shop, r.spec.Year, r.k)
	return nil
}

func execProductNames(r *run, res *Result) error {
	res.Items = query.ProductNames(r.shop)
	return nil
}

func execProductsByTag(r *run, res *Result) error {
	if r.spec.Tag == "" {
		return fmt.Errorf("%w: tag is required", ErrInvalidSpec)
	}
	products := query.ProductsByTag(r.shop, r.spec.Tag)
	setProducts(res, products)
	return nil
}

func execMinLimitProducts(r *run, res *Result) error {
	products := query.ProductsWithMinLimit(r.shop.Products)
	setProducts(res, products)
	return nil
}

func execLimitConflicts(r *run, res *Result) error {
	conflicts := query.LimitConflicts(r.shop.Products)
	for _, c := range conflicts {
		res.Items = append(res.Items, c.Name)
	}
	if len(conflicts) > 0 {
		res.Type = "table"
		res.TableData = conflictTable(res.Title, conflicts)
	}
	return nil
}

func setProducts(res *Result, products []*shop.Product) {
	for _, p := range products {
		res.Items = append(res.Items, p.Name)
	}
	for _, c := range query.LimitConflicts(products) {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("%s has %d %q limits; the first one is used", c.Name, len(c.Limits), c.Type))
	}
	if len(products) > 0 {
		res.Type = "table"
		res.TableData = productTable(res.Title, products)
	}
}

func execBreakdown(r *run, res *Result) error {
	spec := r.spec
	measure := spec.Measure
	if measure == "" {
		measure = r.cfg.Schema.GetDefaultMeasure()
	}

	filters := breakdownFilters(spec)
	filterKeys := make([]string, 0, len(filters.Dimensions))
	for dim := range filters.Dimensions {
		filterKeys = append(filterKeys, dim)
	}
	slices.Sort(filterKeys)
	if err := r.cfg.Schema.Validate(spec.GroupBy, filterKeys, measure, spec.Aggregation); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSpec, err)
	}

	// A negative K asks for nothing, like every other query.
	if r.k <= 0 {
		return nil
	}

	view := NewOrderView(r.shop)
	filtered := ApplyFilters(view, filters)
	if filtered.Len() == 0 {
		res.Type = "text"
		res.Reply = "No orders match your filters."
		return nil
	}
	log.Printf("🔧 Shopstats: breakdown over %d orders (from %d)", filtered.Len(), view.Len())

	r.vars["{measure}"] = measure
	r.vars["{period}"] = DerivePeriod(filtered)
	r.vars["{orders}"] = strconv.Itoa(filtered.Len())

	if len(spec.GroupBy) == 0 {
		res.Type = "text"
		res.Data = BuildText(spec, filtered, measure, r.cfg.Currency)
		r.vars["{value}"] = res.Data.Value
		res.Reply = ResolvePlaceholders("{value} {measure} over {orders} orders ({period}).", r.vars)
		return nil
	}

	groups := GroupAndAggregate(filtered, spec.GroupBy, measure, spec.Aggregation, spec.SortBy, r.k)
	for _, g := range groups {
		res.Items = append(res.Items, g.Label)
	}
	res.Type = "table"
	res.TableData = BuildTable(spec, groups, measure, r.cfg.Currency)
	if len(groups) > 0 {
		r.vars["{top_group}"] = groups[0].Label
		r.vars["{top_value}"] = formatMeasure(groups[0].Value, measure, r.cfg.Currency)
	}
	res.Reply = ResolvePlaceholders("{measure} by "+strings.Join(spec.GroupBy, " and ")+" over {orders} orders ({period}); first: {top_group} at {top_value}.", r.vars)
	return nil
}

// ============================================================================
// PLACEHOLDER RESOLUTION
// ============================================================================

// ResolvePlaceholders strips the template's unknown placeholders, then
// substitutes values in one pass. Values are inserted verbatim: braces in a
// tag or product name are neither resolved nor stripped.
func ResolvePlaceholders(template string, vars map[string]string) string {
	return resolve(stripUnresolvedPlaceholders(template, vars), vars)
}

func resolve(template string, vars map[string]string) string {
	pairs := make([]string, 0, 2*len(vars))
	for placeholder, value := range vars {
		pairs = append(pairs, placeholder, value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

var placeholderRegex = regexp.MustCompile(`\{[a-z_]+\}`)

func stripUnresolvedPlaceholders(template string, vars map[string]string) string {
	cleaned := placeholderRegex.ReplaceAllStringFunc(template, func(p string) string {
		if _, ok := vars[p]; ok {
			return p
		}
		return ""
	})
	cleaned = strings.ReplaceAll(cleaned, "  ", " ")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return template
	}
	return cleaned
}

// ============================================================================
// QUERYSPEC NORMALIZATION
// ============================================================================

// NormalizeQuerySpec canonicalizes the query name ("Top_Customers" →
// "top-customers") and breakdown sort and aggregation keys.
func NormalizeQuerySpec(spec QuerySpec) QuerySpec {
	orig := spec.Query

	spec.Query = strings.ToLower(strings.TrimSpace(spec.Query))
	spec.Query = strings.ReplaceAll(spec.Query, "_", "-")
	spec.Query = strings.ReplaceAll(spec.Query, " ", "-")
	spec.Aggregation = strings.ToLower(strings.TrimSpace(spec.Aggregation))
	spec.SortBy = strings.ToLower(strings.TrimSpace(spec.SortBy))

	if spec.Query != orig {
		log.Printf("🔧 NormalizeQuerySpec: %q → %q", orig, spec.Query)
	}
	return spec
}
