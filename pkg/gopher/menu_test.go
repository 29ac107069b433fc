package gopher

import (
	"strings"
	"testing"
)

func TestParseMenu(t *testing.T) {
	data := []byte("1Home\t/\texample.org\t70\r\n.\r\n")

	items, warnings := ParseMenu(data)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}

	want := Item{Type: TypeDirectory, Display: "Home", Selector: "/", Host: "example.org", Port: 70}
	if items[0] != want {
		t.Errorf("item = %+v, want %+v", items[0], want)
	}
}

// A malformed line must not abort parsing of the remaining lines.
func TestParseMenu_SkipsMalformedLines(t *testing.T) {
	data := []byte("1Home\t/\texample.org\t70\r\n" +
		"0BadLine\r\n" +
		"1Docs\t/docs\texample.org\t70\r\n")

	items, warnings := ParseMenu(data)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].Display != "Home" || items[1].Display != "Docs" {
		t.Errorf("items = %+v, want Home and Docs", items)
	}
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], "line 2") {
		t.Errorf("warning %q does not name line 2", warnings[0])
	}
}

func TestParseMenu_NonNumericPort(t *testing.T) {
	data := []byte("1Home\t/\texample.org\tseventy\r\n1Docs\t/docs\texample.org\t70\r\n")

	items, warnings := ParseMenu(data)
	if len(items) != 1 || items[0].Display != "Docs" {
		t.Fatalf("items = %+v, want only Docs", items)
	}
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
}

func TestParseMenu_TerminatorEndsListing(t *testing.T) {
	data := []byte("1Home\t/\texample.org\t70\r\n" +
		".\r\n" +
		"1After\t/after\texample.org\t70\r\n")

	items, _ := ParseMenu(data)
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1 (terminator should end listing)", len(items))
	}
}

func TestParseMenu_Empty(t *testing.T) {
	items, warnings := ParseMenu(nil)
	if items == nil {
		t.Fatal("ParseMenu(nil) returned nil, want empty slice")
	}
	if len(items) != 0 || len(warnings) != 0 {
		t.Errorf("got %d items, %d warnings, want none", len(items), len(warnings))
	}
}

func TestParseMenu_IgnoresTrailingGopherPlusField(t *testing.T) {
	data := []byte("1Home\t/\texample.org\t70\t+\r\n")

	items, warnings := ParseMenu(data)
	if len(items) != 1 || len(warnings) != 0 {
		t.Fatalf("items = %v, warnings = %v, want 1 item and no warnings", items, warnings)
	}
}

func TestParseMenu_PreservesServerOrder(t *testing.T) {
	data := []byte("1Zebra\t/z\texample.org\t70\r\n" +
		"1Apple\t/a\texample.org\t70\r\n" +
		"0Mango\t/m\texample.org\t70\r\n")

	items, _ := ParseMenu(data)
	got := make([]string, len(items))
	for i, it := range items {
		got[i] = it.Display
	}
	want := []string{"Zebra", "Apple", "Mango"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestDecodeText(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"utf-8", []byte("héllo"), "héllo"},
		{"latin-1 fallback", []byte{'c', 'a', 'f', 0xe9}, "café"},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeText(tt.data); got != tt.want {
				t.Errorf("DecodeText() = %q, want %q", got, tt.want)
			}
		})
	}
}
