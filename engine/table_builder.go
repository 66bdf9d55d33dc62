package engine

import (
	"fmt"
	"strings"

	"github.com/geekcolab/shopstats/query"
	"github.com/geekcolab/shopstats/shop"
)

// ============================================================================
// TABLE BUILDER — Produces TableData for breakdowns and query results
// ============================================================================

// BuildTable produces a breakdown table from aggregated groups. Two-level
// groupings render one row per sub-group with both labels.
func BuildTable(spec QuerySpec, groups []Group, measure string, unit string) *TableData {
	if len(groups) == 0 {
		return &TableData{
			Title:   spec.Title,
			Columns: []Column{},
			Rows:    [][]string{},
		}
	}

	columns := make([]Column, 0, len(spec.GroupBy)+2)
	for _, dim := range spec.GroupBy {
		columns = append(columns, Column{Key: dim, Label: LabelForDimension(dim), Type: "text", Align: "left"})
	}
	if len(spec.GroupBy) == 0 {
		columns = append(columns, Column{Key: "group", Label: "Group", Type: "text", Align: "left"})
	}
	columns = append(columns,
		Column{Key: "value", Label: LabelForAggregation(spec.Aggregation) + " (" + measure + ")", Type: "number", Align: "right"},
		Column{Key: "count", Label: "Count", Type: "number", Align: "center"},
	)

	rows := make([][]string, 0, len(groups))
	var totalValue float64
	var totalCount int

	for _, g := range groups {
		if len(spec.GroupBy) > 1 && len(g.SubGroups) > 0 {
			for _, sg := range g.SubGroups {
				rows = append(rows, []string{g.Label, sg.Label, fmt.Sprintf("%.2f", sg.Value), fmt.Sprintf("%d", sg.Count)})
			}
		} else {
			row := []string{g.Label}
			if len(spec.GroupBy) > 1 {
				row = append(row, "")
			}
			rows = append(rows, append(row, fmt.Sprintf("%.2f", g.Value), fmt.Sprintf("%d", g.Count)))
		}
		totalValue += g.Value
		totalCount += g.Count
	}

	summary := &Summary{
		Label:  "Total",
		Values: map[string]string{"count": fmt.Sprintf("%d", totalCount)},
	}
	// Sums add up across groups; other aggregations do not.
	if spec.Aggregation == "" || spec.Aggregation == "sum" {
		summary.Values["value"] = formatMeasure(totalValue, measure, unit)
	}

	return &TableData{
		Title:   spec.Title,
		Columns: columns,
		Rows:    rows,
		Summary: summary,
	}
}

// ============================================================================
// QUERY TABLES
// ============================================================================

func customerSpendTable(title string, ranked []query.CustomerSpend, unit string) *TableData {
	rows := make([][]string, 0, len(ranked))
	var total float64
	for i, r := range ranked {
		rows = append(rows, []string{fmt.Sprintf("%d", i+1), r.Name, FormatCurrency(r.Spend, unit)})
		total += r.Spend
	}
	return &TableData{
		Title: title,
		Columns: []Column{
			{Key: "rank", Label: "#", Type: "number", Align: "right"},
			{Key: "customer", Label: "Customer", Type: "text", Align: "left"},
			{Key: "spend", Label: "Spend", Type: "currency", Align: "right"},
		},
		Rows: rows,
		Summary: &Summary{
			Label:  fmt.Sprintf("Total (%d customers)", len(ranked)),
			Values: map[string]string{"spend": FormatCurrency(total, unit)},
		},
	}
}

func productTable(title string, products []*shop.Product) *TableData {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		minLimit := ""
		if l, ok := query.MinLimit(p); ok {
			minLimit = formatNumber(l.Value)
		}
		discounts := make([]string, 0, len(p.Discounts))
		for _, d := range p.Discounts {
			discounts = append(discounts, FormatPercent(d.Percent))
		}
		rows = append(rows, []string{p.Name, p.Tag.Name, strings.Join(discounts, ", "), minLimit})
	}
	return &TableData{
		Title: title,
		Columns: []Column{
			{Key: "product", Label: "Product", Type: "text", Align: "left"},
			{Key: "tag", Label: "Tag", Type: "text", Align: "left"},
			{Key: "discounts", Label: "Discounts", Type: "text", Align: "left"},
			{Key: "min", Label: "Min limit", Type: "number", Align: "right"},
		},
		Rows: rows,
	}
}

func conflictTable(title string, conflicts []query.LimitConflict) *TableData {
	rows := make([][]string, 0, len(conflicts))
	for _, c := range conflicts {
		values := make([]string, 0, len(c.Limits))
		for _, l := range c.Limits {
			values = append(values, formatNumber(l.Value))
		}
		rows = append(rows, []string{c.Name, c.Type, strings.Join(values, ", ")})
	}
	return &TableData{
		Title: title,
		Columns: []Column{
			{Key: "product", Label: "Product", Type: "text", Align: "left"},
			{Key: "type", Label: "Limit type", Type: "text", Align: "left"},
			{Key: "values", Label: "Values", Type: "text", Align: "left"},
		},
		Rows: rows,
	}
}

// formatMeasure renders a breakdown value in the measure's natural unit.
func formatMeasure(v float64, measure, unit string) string {
	switch measure {
	case "discount":
		return FormatPercent(v)
	case "products":
		return formatNumber(v)
	default:
		return FormatCurrency(v, unit)
	}
}

// formatNumber prints whole numbers without decimals.
func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
