// Package card parses corporate-card CSV statements into expense line
// items. The export has no fixed header row position, so the parser
// scans for a row containing the required column names first.
package card

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	enc "github.com/enertech-th/fieldforms/internal/encoding"
	"github.com/enertech-th/fieldforms/internal/expense"
)

type Card struct{}

func New() *Card {
	return &Card{}
}

// Column names as they appear in the export. Matching is
// case-insensitive; Currency and Merchant are optional.
const (
	colDate     = "date"
	colDesc     = "description"
	colMerchant = "merchant"
	colAmount   = "amount"
	colCurrency = "currency"
)

var requiredCols = []string{colDate, colDesc, colAmount}

type colIndex map[string]int

func (c *Card) Parse(r io.Reader) ([]expense.Item, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx, ok := findHeader(rows)
	if !ok {
		return nil, fmt.Errorf("no header row found: expected columns %s", strings.Join(requiredCols, ", "))
	}

	return parseRows(cols, rows[headerIdx+1:])
}

func findHeader(rows [][]string) (colIndex, int, bool) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		matched := true

		for _, name := range requiredCols {
			if _, ok := cols[name]; !ok {
				matched = false
				break
			}
		}

		if matched {
			return cols, rowIdx, true
		}
	}

	return nil, 0, false
}

func parseRows(cols colIndex, rows [][]string) ([]expense.Item, error) {
	var items []expense.Item

	for _, row := range rows {
		date, ok := parseDate(cellValue(row, cols[colDate]))
		if !ok {
			continue
		}

		amount, err := parseAmount(cellValue(row, cols[colAmount]))
		if err != nil || amount <= 0 {
			// Credits and malformed rows are not expense lines.
			continue
		}

		currency := "THB"
		if idx, ok := cols[colCurrency]; ok {
			if v := cellValue(row, idx); v != "" {
				currency = strings.ToUpper(v)
			}
		}

		item := expense.Item{
			Date:     date.Format(time.DateOnly),
			Detail:   cellValue(row, cols[colDesc]),
			Amount:   amount,
			Currency: currency,
			Category: "Other",
		}

		if idx, ok := cols[colMerchant]; ok {
			item.Vendor = cellValue(row, idx)
		}

		items = append(items, item)
	}

	return items, nil
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

var dateLayouts = []string{time.DateOnly, "2006/01/02", "02/01/2006", "02-01-2006"}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// parseAmount accepts thousand separators and a leading currency sign,
// e.g. "1,234.50" or "-230.00".
func parseAmount(s string) (float64, error) {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	return strconv.ParseFloat(s, 64)
}
