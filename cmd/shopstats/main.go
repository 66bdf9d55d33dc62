package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/geekcolab/shopstats/engine"
	"github.com/geekcolab/shopstats/helpers"
	"github.com/geekcolab/shopstats/schema"
)

// ============================================================================
// SHOPSTATS CLI — ask questions of a shop fixture
// ============================================================================

const version = "0.1.0"

// filterFlag collects repeated --filter dim=v1,v2 values.
type filterFlag map[string][]string

func (f filterFlag) String() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+strings.Join(f[k], ","))
	}
	return strings.Join(parts, " ")
}

func (f filterFlag) Set(v string) error {
	dim, vals, ok := strings.Cut(v, "=")
	if !ok || dim == "" || vals == "" {
		return fmt.Errorf("want dimension=value[,value...], got %q", v)
	}
	for _, val := range strings.Split(vals, ",") {
		if val = strings.TrimSpace(val); val != "" {
			f[dim] = append(f[dim], val)
		}
	}
	return nil
}

func main() {
	// ── Flags ─────────────────────────────────────────────────────────────
	filePath := flag.String("file", os.Getenv("SHOPSTATS_FILE"), "Path to shop YAML fixture (default $SHOPSTATS_FILE)")
	queryName := flag.String("query", "", "Query to run (see --list)")
	year := flag.Int("year", 0, "Calendar year")
	k := flag.Int("k", 0, "Result limit (0 = default)")
	minDiscount := flag.Float64("min-discount", 0, "Minimum total discount percent (top-customers; unset = engine default)")
	tag := flag.String("tag", "", "Product tag (products-by-tag)")
	groupBy := flag.String("group-by", "", "Breakdown dimensions, comma separated (at most two)")
	measure := flag.String("measure", "", "Breakdown measure")
	aggregation := flag.String("aggregation", "", "Breakdown aggregation: sum, avg, min, max, count")
	sortBy := flag.String("sort-by", "", "Breakdown sort: value_desc, value_asc, date_asc, date_desc, label_asc, label_desc")
	reply := flag.String("reply", "", "Reply template, e.g. \"{count} found: {items}\"")
	currency := flag.String("currency", "", "Currency prefix for money values")
	format := flag.String("format", "json", "Output format: json, pretty, text, csv, dump")
	outFile := flag.String("out", "", "Write output to file instead of stdout")
	logFormat := flag.String("log-format", "text", "Log format: text, json")
	quiet := flag.Bool("quiet", false, "Suppress logs")
	list := flag.Bool("list", false, "List supported queries and exit")
	showSchema := flag.Bool("schema", false, "Print the breakdown schema and exit")
	showVersion := flag.Bool("version", false, "Print version and exit")
	filters := filterFlag{}
	flag.Var(filters, "filter", "Breakdown filter dimension=v1,v2 (repeatable)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Shopstats — analytics over a shop's customers, staff, orders and products

Usage:
  shopstats --file shop.yaml --query top-customers --year 2021 --min-discount 10 --k 3
  shopstats --file shop.yaml --query breakdown --group-by staff,month --measure tax --format csv
  shopstats --list

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Environment:
  SHOPSTATS_FILE    Fixture used when --file is not given

Formats:
  json      Full JSON output (default)
  pretty    Pretty-printed JSON
  text      Reply and warnings only
  csv       Table or item list as CSV (ready for Sheets/Excel)
  dump      Go value dump of the result, for debugging
`)
	}

	flag.Parse()

	setupLogging(*logFormat, *quiet)

	if *showVersion {
		fmt.Printf("shopstats %s\n", version)
		os.Exit(0)
	}

	// ── Output writer ─────────────────────────────────────────────────────
	writer := os.Stdout
	if *outFile != "" {
		f, err := os.Create(*outFile)
		if err != nil {
			fatalf("Failed to create output file: %v", err)
		}
		defer f.Close()
		writer = f
	}

	if *list {
		writeQueries(writer, engine.Queries(), *format)
		return
	}
	if *showSchema {
		writeJSON(writer, schema.Orders(), *format)
		return
	}

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "Error: --file (or SHOPSTATS_FILE) is required")
		flag.Usage()
		os.Exit(1)
	}
	if *queryName == "" {
		fmt.Fprintln(os.Stderr, "Error: --query is required")
		flag.Usage()
		os.Exit(1)
	}

	// ── Load shop ─────────────────────────────────────────────────────────
	data, err := os.ReadFile(*filePath)
	if err != nil {
		fatalf("Failed to read file: %v", err)
	}
	s, err := helpers.ParseShopYAML(data)
	if err != nil {
		fatalf("Failed to load shop: %v", err)
	}
	log.Printf("📋 Loaded shop: %d people, %d staff, %d products", len(s.People()), len(s.Staff), len(s.Products))

	// ── Execute ───────────────────────────────────────────────────────────
	spec := engine.QuerySpec{
		Query:       *queryName,
		Year:        *year,
		K:           *k,
		Tag:         *tag,
		GroupBy:     splitList(*groupBy),
		Measure:     *measure,
		Aggregation: *aggregation,
		SortBy:      *sortBy,
		Reply:       *reply,
		Filters:     engine.Filters{Dimensions: filters},
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "min-discount" {
			spec.MinDiscount = engine.Percent(*minDiscount)
		}
	})
	result, err := engine.Execute(spec, s, engine.WithCurrency(*currency))
	if err != nil {
		fatalf("Execution failed: %v", err)
	}
	for _, w := range result.Warnings {
		log.Printf("⚠️ %s", w)
	}

	// ── Render output ─────────────────────────────────────────────────────
	switch *format {
	case "csv":
		writeCSV(writer, result)
		if *outFile != "" {
			log.Printf("📄 CSV written to %s", *outFile)
		}
	case "text":
		lines := []string{result.Reply}
		for _, w := range result.Warnings {
			lines = append(lines, "warning: "+w)
		}
		fmt.Fprintln(writer, strings.Join(lines, "\n"))
	case "dump":
		spew.Fdump(writer, result)
	default:
		writeJSON(writer, cliOutput{QuerySpec: spec, Result: result}, *format)
	}
}

// ============================================================================
// OUTPUT TYPES
// ============================================================================

type cliOutput struct {
	QuerySpec engine.QuerySpec `json:"querySpec"`
	Result    *engine.Result   `json:"result"`
}

// ============================================================================
// LOGGING
// ============================================================================

// setupLogging routes the standard logger. With "json" every log.Printf line
// goes through a slog JSON handler on stderr.
func setupLogging(format string, quiet bool) {
	if quiet {
		log.SetOutput(io.Discard)
		return
	}
	if format == "json" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))
	}
}

// ============================================================================
// CSV OUTPUT
// ============================================================================

func writeCSV(w io.Writer, result *engine.Result) {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if result.TableData != nil && writeTableCSV(cw, result.TableData) {
		return
	}

	if len(result.Items) > 0 {
		cw.Write([]string{"Item"})
		for _, item := range result.Items {
			cw.Write([]string{item})
		}
		return
	}

	// Fallback: text result as single-row CSV
	cw.Write([]string{"Summary", "Value", "Unit"})
	value := ""
	if result.Data != nil {
		value = result.Data.Value
	}
	cw.Write([]string{result.Reply, value, result.DisplayUnit})
}

func writeTableCSV(cw *csv.Writer, table *engine.TableData) bool {
	if len(table.Columns) == 0 {
		return false
	}

	headers := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		headers[i] = c.Label
	}
	cw.Write(headers)
	for _, row := range table.Rows {
		cw.Write(row)
	}

	if table.Summary != nil {
		row := make([]string, len(table.Columns))
		row[0] = table.Summary.Label
		for i, c := range table.Columns {
			if v, ok := table.Summary.Values[c.Key]; ok && i > 0 {
				row[i] = v
			}
		}
		cw.Write(row)
	}
	return true
}

// ============================================================================
// JSON OUTPUT
// ============================================================================

func writeJSON(w io.Writer, v interface{}, format string) {
	var out []byte
	var err error

	if format == "pretty" {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}

	if err != nil {
		fatalf("Failed to marshal output: %v", err)
	}
	fmt.Fprintln(w, string(out))
}

func writeQueries(w io.Writer, infos []engine.QueryInfo, format string) {
	if format != "text" {
		writeJSON(w, infos, format)
		return
	}
	for _, q := range infos {
		params := ""
		if len(q.Params) > 0 {
			params = " [" + strings.Join(q.Params, ", ") + "]"
		}
		fmt.Fprintf(w, "%-20s %s%s\n", q.Name, q.Description, params)
	}
}

// ============================================================================
// HELPERS
// ============================================================================

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
