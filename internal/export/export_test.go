package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/insightstack/insightstack/internal/models"
)

func sampleInsights() []*models.Insight {
	return []*models.Insight{
		{
			ID:               "i1",
			ChannelID:        "ch1",
			Title:            "Charge for outcomes",
			ProblemAddressed: "Underpricing",
			Description:      "Price on value delivered.",
			Category:         "saas",
			Tags:             []string{"pricing", "sales"},
			SourceContext: models.SourceContext{
				PodcastName:  "My First Million",
				EpisodeTitle: "Building a SaaS",
			},
			CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		},
		{ID: "i2", Title: "No timestamp"},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"", FormatJSON, false},
		{"json", FormatJSON, false},
		{"CSV", FormatCSV, false},
		{" xlsx ", FormatXLSX, false},
		{"pdf", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, sampleInsights()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var decoded []*models.Insight
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 || decoded[0].ID != "i1" {
		t.Errorf("decoded %d insights, first %q", len(decoded), decoded[0].ID)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatCSV, sampleInsights()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if rows[0][0] != "id" || rows[0][4] != "tags" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][4] != "pricing;sales" {
		t.Errorf("tags cell = %q, want semicolon-joined", rows[1][4])
	}
	if rows[1][9] != "2026-03-01T12:00:00Z" {
		t.Errorf("created_at cell = %q, want RFC3339", rows[1][9])
	}
	if rows[2][9] != "" {
		t.Errorf("zero timestamp cell = %q, want empty", rows[2][9])
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatXLSX, sampleInsights()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("output is not a readable workbook: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue("Sheet1", "A1")
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if got != "id" {
		t.Errorf("A1 = %q, want header %q", got, "id")
	}
	got, err = f.GetCellValue("Sheet1", "C2")
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if got != "Charge for outcomes" {
		t.Errorf("C2 = %q, want first insight title", got)
	}
}

func TestContentTypeAndFileName(t *testing.T) {
	if got := FormatCSV.ContentType(); got != "text/csv" {
		t.Errorf("CSV content type = %q", got)
	}
	if got := FormatXLSX.FileName(); got != "insights.xlsx" {
		t.Errorf("XLSX file name = %q", got)
	}
	if !strings.HasPrefix(FormatJSON.ContentType(), "application/json") {
		t.Errorf("JSON content type = %q", FormatJSON.ContentType())
	}
}
