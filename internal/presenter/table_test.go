package presenter

import (
	"bytes"
	"strings"
	"testing"
)

// TestPrintTable verifies header, separator and rows are all written.
func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer

	header := []string{"CLUSTER", "STATUS"}
	rows := [][]string{
		{"prod-east", "SUCCEEDED"},
		{"prod-west", "FAILED"},
	}
	PrintTable(&buf, header, rows)

	output := buf.String()

	if !strings.Contains(output, "CLUSTER") || !strings.Contains(output, "STATUS") {
		t.Errorf("Header not printed. Output:\n%s", output)
	}
	if !strings.Contains(output, "-------") {
		t.Errorf("Separator not printed. Output:\n%s", output)
	}
	if !strings.Contains(output, "prod-east") || !strings.Contains(output, "SUCCEEDED") {
		t.Errorf("First row not printed. Output:\n%s", output)
	}
	if !strings.Contains(output, "prod-west") || !strings.Contains(output, "FAILED") {
		t.Errorf("Second row not printed. Output:\n%s", output)
	}
}

// TestPrintTableEmptyRows verifies an empty table still prints its header.
func TestPrintTableEmptyRows(t *testing.T) {
	var buf bytes.Buffer

	PrintTable(&buf, []string{"NAME"}, nil)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Errorf("Expected header and separator only, got %d lines:\n%s", len(lines), buf.String())
	}
}

// TestPrintTableAlignment verifies columns line up across rows.
func TestPrintTableAlignment(t *testing.T) {
	var buf bytes.Buffer

	PrintTable(&buf, []string{"NAME", "VALUE"}, [][]string{
		{"short", "1"},
		{"a-much-longer-name", "2"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	valueCol := strings.Index(lines[2], "1")
	if valueCol < 0 {
		t.Fatalf("Value missing from row: %q", lines[2])
	}
	if lines[3][valueCol] != '2' {
		t.Errorf("Columns not aligned:\n%s", buf.String())
	}
}
