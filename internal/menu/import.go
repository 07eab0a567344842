package menu

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row is one spreadsheet row after header mapping and cleanup.
type Row struct {
	Name        string
	Category    string
	Price       float64
	Description string
}

var ErrNoSheets = errors.New("workbook has no sheets")

// Header synonyms, matched case-insensitively against the first row.
var (
	nameHeaders        = []string{"name", "item"}
	categoryHeaders    = []string{"category"}
	priceHeaders       = []string{"price"}
	descriptionHeaders = []string{"description", "desc"}
)

// ParseWorkbook reads the first sheet of an XLSX file. The first row is
// the header; rows without a name are skipped by the merge, categories
// default to "Uncategorized" and prices to 0.
func ParseWorkbook(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(cells) < 2 {
		return []Row{}, nil
	}

	nameCol := findColumn(cells[0], nameHeaders)
	categoryCol := findColumn(cells[0], categoryHeaders)
	priceCol := findColumn(cells[0], priceHeaders)
	descriptionCol := findColumn(cells[0], descriptionHeaders)

	rows := []Row{}
	for _, record := range cells[1:] {
		row := Row{
			Name:        cell(record, nameCol),
			Category:    cell(record, categoryCol),
			Description: cell(record, descriptionCol),
			Price:       ParsePrice(cell(record, priceCol)),
		}
		if row.Category == "" {
			row.Category = "Uncategorized"
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func findColumn(header []string, synonyms []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, want := range synonyms {
			if h == want {
				return i
			}
		}
	}
	return -1
}

func cell(record []string, col int) string {
	if col < 0 || col >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[col])
}
