package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geekcolab/shopstats/engine"
)

func TestFilterFlag(t *testing.T) {
	f := filterFlag{}
	require.NoError(t, f.Set("staff=Bo Kim, Dan Ode"))
	require.NoError(t, f.Set("year=2021"))
	assert.Equal(t, []string{"Bo Kim", "Dan Ode"}, f["staff"])
	assert.Equal(t, "staff=Bo Kim,Dan Ode year=2021", f.String())

	assert.Error(t, f.Set("staff"))
	assert.Error(t, f.Set("=x"))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"staff", "month"}, splitList(" staff , month,"))
	assert.Nil(t, splitList(""))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	writeCSV(&buf, &engine.Result{
		TableData: &engine.TableData{
			Columns: []engine.Column{{Key: "staff", Label: "Staff"}, {Key: "value", Label: "Amount"}},
			Rows:    [][]string{{"Bo Kim", "240.00"}},
			Summary: &engine.Summary{Label: "Total", Values: map[string]string{"value": "240.00"}},
		},
	})
	assert.Equal(t, "Staff,Amount\nBo Kim,240.00\nTotal,240.00\n", buf.String())

	buf.Reset()
	writeCSV(&buf, &engine.Result{Items: []string{"Apple", "Bread"}})
	assert.Equal(t, "Item\nApple\nBread\n", buf.String())

	buf.Reset()
	writeCSV(&buf, &engine.Result{Reply: "No results."})
	assert.Equal(t, "Summary,Value,Unit\nNo results.,,\n", buf.String())
}

func TestWriteQueriesText(t *testing.T) {
	var buf bytes.Buffer
	writeQueries(&buf, []engine.QueryInfo{{Name: "product-names", Description: "Every product"}}, "text")
	assert.Equal(t, "product-names        Every product\n", buf.String())
}
