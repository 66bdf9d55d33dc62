package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geekcolab/shopstats/schema"
	"github.com/geekcolab/shopstats/shop"
)

// newTestShop builds:
//
//	o1 Jan-2021 clerk(Bo)   ann     subtotal 200 tax 20 apple, bread (15%)
//	o2 Feb-2021 clerk(Bo)   bo      subtotal  40 tax  5 nail         (none)
//	o3 Mar-2021 manager(Dan) ann,bo subtotal 100 tax 10 apple        (10%)
//	o4 May-2020 manager(Dan) bo     subtotal  50 tax 50 bread        (5%)
func newTestShop() *shop.Shop {
	b := shop.NewBuilder()
	ann := b.AddCustomer(b.AddPerson("Ann", "Lee"))
	boPerson := b.AddPerson("Bo", "Kim")
	bo := b.AddCustomer(boPerson)
	clerk := b.AddStaff(boPerson)
	manager := b.AddStaff(b.AddPerson("Dan", "Ode"))

	apple := b.AddProduct("Apple", "food", []float64{10}, shop.Limit{Type: shop.LimitMin, Value: 5})
	bread := b.AddProduct("Bread", "food", []float64{5})
	nail := b.AddProduct("Nail", "tools", nil,
		shop.Limit{Type: shop.LimitMin, Value: 50}, shop.Limit{Type: shop.LimitMin, Value: 60})

	day := func(y int, m time.Month) time.Time { return time.Date(y, m, 3, 9, 0, 0, 0, time.UTC) }
	b.AddOrder(clerk, []*shop.Customer{ann}, day(2021, time.January), 200, 20, apple, bread)
	b.AddOrder(clerk, []*shop.Customer{bo}, day(2021, time.February), 40, 5, nail)
	b.AddOrder(manager, []*shop.Customer{ann, bo}, day(2021, time.March), 100, 10, apple)
	b.AddOrder(manager, []*shop.Customer{bo}, day(2020, time.May), 50, 50, bread)
	return b.Build()
}

func TestExecuteTopCustomers(t *testing.T) {
	res, err := Execute(QuerySpec{Query: QueryTopCustomers, Year: 2021, MinDiscount: Percent(10), K: 5}, newTestShop(), WithCurrency("USD"))
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "table", res.Type)
	assert.Equal(t, []string{"Ann Lee", "Bo Kim"}, res.Items)
	assert.Equal(t, "Top 2 customers in 2021 with at least 10.0% discount: Ann Lee, Bo Kim.", res.Reply)
	require.NotNil(t, res.TableData)
	assert.Equal(t, [][]string{{"1", "Ann Lee", "USD 300.00"}, {"2", "Bo Kim", "USD 100.00"}}, res.TableData.Rows)
	assert.Equal(t, "USD 400.00", res.TableData.Summary.Values["spend"])
}

func TestExecuteDefaults(t *testing.T) {
	s := newTestShop()

	res, err := Execute(QuerySpec{Query: QueryTopCustomers, Year: 2021}, s, WithDefaultLimit(1), WithDefaultMinDiscount(10))
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann Lee"}, res.Items)

	res, err = Execute(QuerySpec{Query: QueryTopCustomers, Year: 2021, K: -1}, s)
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, "text", res.Type)
	assert.Equal(t, "No results.", res.Reply)
}

func TestExecuteTaxQueries(t *testing.T) {
	s := newTestShop()

	res, err := Execute(QuerySpec{Query: QueryMostTaxedProducts, Year: 2021, K: 2}, s)
	require.NoError(t, err)
	assert.Equal(t, "list", res.Type)
	assert.Equal(t, []string{"Apple", "Bread"}, res.Items)
	assert.Equal(t, "Most taxed products in 2021: Apple, Bread.", res.Reply)

	res, err = Execute(QuerySpec{Query: QueryTopTaxCustomers, Year: 2021, K: 1}, s)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann Lee"}, res.Items)

	res, err = Execute(QuerySpec{Query: QueryTopTaxCustomers, Year: 2021, K: 2}, s)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann Lee", "Bo Kim"}, res.Items)

	res, err = Execute(QuerySpec{Query: QueryTopTaxCustomers, Year: 2020, K: 3}, s)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bo Kim"}, res.Items)
}

func TestExecuteCatalogQueries(t *testing.T) {
	s := newTestShop()

	res, err := Execute(QuerySpec{Query: QueryProductNames}, s)
	require.NoError(t, err)
	assert.Equal(t, []string{"Apple", "Bread", "Nail"}, res.Items)

	res, err = Execute(QuerySpec{Query: QueryProductsByTag, Tag: "food"}, s)
	require.NoError(t, err)
	assert.Equal(t, []string{"Apple", "Bread"}, res.Items)
	assert.Equal(t, "Products tagged food", res.Title)
	require.NotNil(t, res.TableData)
	assert.Equal(t, []string{"Apple", "food", "10.0%", "5"}, res.TableData.Rows[0])
	assert.Equal(t, []string{"Bread", "food", "5.0%", ""}, res.TableData.Rows[1])
	assert.Empty(t, res.Warnings)

	res, err = Execute(QuerySpec{Query: QueryMinLimitProducts}, s)
	require.NoError(t, err)
	assert.Equal(t, []string{"Apple", "Nail"}, res.Items)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "Nail")

	res, err = Execute(QuerySpec{Query: QueryLimitConflicts}, s)
	require.NoError(t, err)
	assert.Equal(t, []string{"Nail"}, res.Items)
	assert.Equal(t, [][]string{{"Nail", "min", "50, 60"}}, res.TableData.Rows)
}

func TestExecuteNormalizesQueryName(t *testing.T) {
	res, err := Execute(QuerySpec{Query: "  Product_Names "}, newTestShop())
	require.NoError(t, err)
	assert.Equal(t, QueryProductNames, res.Query)
}

func TestExecuteCustomReply(t *testing.T) {
	res, err := Execute(QuerySpec{Query: QueryProductNames, Reply: "{count} items: {items} {unknown}"}, newTestShop())
	require.NoError(t, err)
	assert.Equal(t, "3 items: Apple, Bread, Nail", res.Reply)
}

func TestExecuteErrors(t *testing.T) {
	s := newTestShop()

	_, err := Execute(QuerySpec{Query: "best-sellers"}, s)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownQuery)
	var qe *QueryError
	require.True(t, errors.As(err, &qe))
	assert.Equal(t, "best-sellers", qe.Query)
	assert.Equal(t, "execute [best-sellers]: unknown query", err.Error())

	_, err = Execute(QuerySpec{Query: QueryProductNames}, nil)
	assert.ErrorIs(t, err, ErrNoShop)

	_, err = Execute(QuerySpec{Query: QueryProductsByTag}, s)
	assert.ErrorIs(t, err, ErrInvalidSpec)

	_, err = Execute(QuerySpec{Query: QueryBreakdown, Measure: "revenue"}, s)
	assert.ErrorIs(t, err, ErrInvalidSpec)
	assert.ErrorIs(t, err, schema.ErrUnknownMeasure)

	_, err = Execute(QuerySpec{Query: QueryBreakdown, GroupBy: []string{"region"}}, s)
	assert.ErrorIs(t, err, schema.ErrUnknownDimension)
}

func TestExecuteBreakdownByYear(t *testing.T) {
	res, err := Execute(QuerySpec{
		Query:   QueryBreakdown,
		GroupBy: []string{"year"},
		Measure: "tax",
		SortBy:  "date_asc",
	}, newTestShop(), WithCurrency("USD"))
	require.NoError(t, err)

	assert.Equal(t, "table", res.Type)
	assert.Equal(t, []string{"2020", "2021"}, res.Items)
	assert.Equal(t, [][]string{{"2020", "50.00", "1"}, {"2021", "35.00", "3"}}, res.TableData.Rows)
	assert.Equal(t, "USD 85.00", res.TableData.Summary.Values["value"])
	assert.Equal(t, "4", res.TableData.Summary.Values["count"])
}

func TestExecuteBreakdownByStaffInYear(t *testing.T) {
	res, err := Execute(QuerySpec{
		Query:   QueryBreakdown,
		Year:    2021,
		GroupBy: []string{"staff"},
		SortBy:  "value_desc",
	}, newTestShop())
	require.NoError(t, err)

	assert.Equal(t, []string{"Bo Kim", "Dan Ode"}, res.Items)
	assert.Equal(t, [][]string{{"Bo Kim", "240.00", "2"}, {"Dan Ode", "100.00", "1"}}, res.TableData.Rows)
	assert.Contains(t, res.Reply, "first: Bo Kim at 240.00")
}

func TestExecuteBreakdownTwoLevels(t *testing.T) {
	res, err := Execute(QuerySpec{
		Query:   QueryBreakdown,
		Year:    2021,
		GroupBy: []string{"staff", "month"},
	}, newTestShop())
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"Bo Kim", "Jan-2021", "200.00", "1"},
		{"Bo Kim", "Feb-2021", "40.00", "1"},
		{"Dan Ode", "Mar-2021", "100.00", "1"},
	}, res.TableData.Rows)
	require.Len(t, res.TableData.Columns, 4)
	assert.Equal(t, "Month", res.TableData.Columns[1].Label)
}

func TestExecuteBreakdownTotal(t *testing.T) {
	res, err := Execute(QuerySpec{Query: QueryBreakdown, Year: 2021}, newTestShop(), WithCurrency("USD"))
	require.NoError(t, err)

	assert.Equal(t, "text", res.Type)
	require.NotNil(t, res.Data)
	assert.Equal(t, 340.0, res.Data.RawValue)
	assert.Equal(t, "USD 340.00", res.Data.Value)
	assert.Equal(t, "Jan-2021 – Mar-2021", res.Data.Period)
	assert.Equal(t, 3, res.Data.Count)
	assert.Equal(t, "USD 340.00 subtotal over 3 orders (Jan-2021 – Mar-2021).", res.Reply)

	res, err = Execute(QuerySpec{Query: QueryBreakdown, Year: 2021, Measure: "discount", Aggregation: "max"}, newTestShop())
	require.NoError(t, err)
	assert.Equal(t, "15.0%", res.Data.Value)
}

func TestExecuteBreakdownNoMatch(t *testing.T) {
	res, err := Execute(QuerySpec{Query: QueryBreakdown, Year: 1999}, newTestShop())
	require.NoError(t, err)
	assert.Equal(t, "text", res.Type)
	assert.Equal(t, "No orders match your filters.", res.Reply)
}

func TestQueriesListsEveryHandler(t *testing.T) {
	infos := Queries()
	require.Len(t, infos, len(handlers))
	assert.Equal(t, QueryTopCustomers, infos[0].Name)
	for _, info := range infos {
		assert.NotEmpty(t, info.Description, info.Name)
	}
}

func TestExecuteTopCustomersTableFollowsLimit(t *testing.T) {
	res, err := Execute(QuerySpec{Query: QueryTopCustomers, Year: 2021, MinDiscount: Percent(10), K: 1}, newTestShop())
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann Lee"}, res.Items)
	assert.Equal(t, [][]string{{"1", "Ann Lee", "300.00"}}, res.TableData.Rows)
}

func TestExecuteExplicitZeroMinDiscount(t *testing.T) {
	s := newTestShop()

	// o4 (2020) carries a 5% discount, below the default threshold.
	res, err := Execute(QuerySpec{Query: QueryTopCustomers, Year: 2020}, s, WithDefaultMinDiscount(10))
	require.NoError(t, err)
	assert.Empty(t, res.Items)

	res, err = Execute(QuerySpec{Query: QueryTopCustomers, Year: 2020, MinDiscount: Percent(0)}, s, WithDefaultMinDiscount(10))
	require.NoError(t, err)
	assert.Equal(t, []string{"Bo Kim"}, res.Items)
	assert.Contains(t, res.Reply, "at least 0.0% discount")
}

func TestExecuteBreakdownLimit(t *testing.T) {
	s := newTestShop()
	spec := QuerySpec{Query: QueryBreakdown, GroupBy: []string{"month"}, SortBy: "date_asc"}

	spec.K = -1
	res, err := Execute(spec, s)
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Nil(t, res.TableData)
	assert.Equal(t, "text", res.Type)
	assert.Equal(t, "No results.", res.Reply)

	spec.K = 0
	res, err = Execute(spec, s, WithDefaultLimit(1))
	require.NoError(t, err)
	assert.Equal(t, []string{"May-2020"}, res.Items)

	spec.K = 2
	res, err = Execute(spec, s, WithDefaultLimit(1))
	require.NoError(t, err)
	assert.Equal(t, []string{"May-2020", "Jan-2021"}, res.Items)
	assert.Len(t, res.TableData.Rows, 2)
}

func TestExecuteKeepsBracesInValues(t *testing.T) {
	res, err := Execute(QuerySpec{Query: QueryProductsByTag, Tag: "{year}", Year: 2021}, newTestShop())
	require.NoError(t, err)
	assert.Equal(t, "Products tagged {year}", res.Title)

	b := shop.NewBuilder()
	b.AddProduct("Glue {fast}", "craft", nil)
	b.AddProduct("Tape", "craft", nil)
	res, err = Execute(QuerySpec{Query: QueryProductNames}, b.Build())
	require.NoError(t, err)
	assert.Equal(t, "2 products: Glue {fast}, Tape.", res.Reply)

	res, err = Execute(QuerySpec{Query: QueryProductsByTag, Tag: "craft", Reply: "{items} in {tag} {nope}"}, b.Build())
	require.NoError(t, err)
	assert.Equal(t, "Glue {fast}, Tape in craft", res.Reply)
}
