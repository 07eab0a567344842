package menu

import (
	"bytes"
	"testing"

	"voice-orders/pkg/models"

	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]any) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestParseWorkbook(t *testing.T) {
	r := buildWorkbook(t, [][]any{
		{"Name", "Price", "Category", "Description"},
		{"Pizza", "$12.50", "Mains", "Wood-fired"},
		{"Cola", "3", "", ""},
		{"", "9.99", "Mains", "nameless"},
	})

	rows, err := ParseWorkbook(r)
	if err != nil {
		t.Fatalf("ParseWorkbook: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}

	if rows[0].Name != "Pizza" || rows[0].Price != 12.5 || rows[0].Category != "Mains" || rows[0].Description != "Wood-fired" {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[1].Category != "Uncategorized" {
		t.Errorf("empty category = %q, want Uncategorized", rows[1].Category)
	}
	if rows[2].Name != "" {
		t.Errorf("row 2 name = %q, want empty (skipped later by merge)", rows[2].Name)
	}
}

func TestParseWorkbookHeaderSynonyms(t *testing.T) {
	r := buildWorkbook(t, [][]any{
		{"ITEM", "PRICE", "desc"},
		{"Soup", "4.25", "hot"},
	})

	rows, err := ParseWorkbook(r)
	if err != nil {
		t.Fatalf("ParseWorkbook: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Name != "Soup" || rows[0].Price != 4.25 || rows[0].Description != "hot" {
		t.Errorf("row = %+v", rows[0])
	}
}

func TestParseWorkbookRejectsGarbage(t *testing.T) {
	if _, err := ParseWorkbook(bytes.NewReader([]byte("not a workbook"))); err == nil {
		t.Fatal("expected error for non-xlsx input")
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"$12.50", 12.5},
		{"12.5", 12.5},
		{"USD 7", 7},
		{"1,200.99", 1200.99},
		{"-3", -3},
		{"free", 0},
		{"", 0},
	}

	for _, test := range tests {
		t.Run(test.raw, func(t *testing.T) {
			if got := ParsePrice(test.raw); got != test.want {
				t.Errorf("ParsePrice(%q) = %v, want %v", test.raw, got, test.want)
			}
		})
	}
}

func TestMergeRowsCreatesAndUpdates(t *testing.T) {
	newID := func() string { return "menu_x" }

	menu, imported := MergeRows(nil, []Row{
		{Name: "Pizza", Category: "Mains", Price: 12.5},
	}, newID)
	if imported != 1 || len(menu) != 1 {
		t.Fatalf("imported=%d len=%d, want 1/1", imported, len(menu))
	}
	if !menu[0].Available {
		t.Error("imported items must default to available")
	}

	// Re-import with a new price, different casing: update in place.
	menu, imported = MergeRows(menu, []Row{
		{Name: "PIZZA", Category: "Mains", Price: 14},
	}, newID)
	if imported != 1 || len(menu) != 1 {
		t.Fatalf("re-import: imported=%d len=%d, want 1/1", imported, len(menu))
	}
	if menu[0].Price != 14 {
		t.Errorf("price = %v, want 14", menu[0].Price)
	}
	if menu[0].Name != "Pizza" {
		t.Errorf("name = %q, existing spelling must be kept", menu[0].Name)
	}
}

func TestMergeRowsSkipsNamelessRows(t *testing.T) {
	menu, imported := MergeRows([]models.MenuItem{}, []Row{
		{Name: "", Price: 9.99, Category: "Mains"},
		{Name: "Cola", Price: 3},
	}, func() string { return "menu_y" })

	if imported != 1 {
		t.Errorf("imported = %d, want 1", imported)
	}
	if len(menu) != 1 || menu[0].Name != "Cola" {
		t.Errorf("menu = %+v", menu)
	}
}
