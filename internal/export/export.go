// Package export writes insight collections in downloadable formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/insightstack/insightstack/internal/models"
)

// Format is a supported export format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

var header = []string{
	"id",
	"channel_id",
	"title",
	"category",
	"tags",
	"problem_addressed",
	"description",
	"podcast_name",
	"episode_title",
	"created_at",
}

// ParseFormat validates a format string, defaulting to JSON when empty.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", s)
	}
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json"
	}
}

// FileName returns a download file name for the format.
func (f Format) FileName() string {
	return "insights." + string(f)
}

// Write renders insights to w in the given format.
func Write(w io.Writer, format Format, insights []*models.Insight) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, insights)
	case FormatXLSX:
		return writeXLSX(w, insights)
	default:
		return writeJSON(w, insights)
	}
}

func writeJSON(w io.Writer, insights []*models.Insight) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(insights)
}

func row(in *models.Insight) []string {
	createdAt := ""
	if !in.CreatedAt.IsZero() {
		createdAt = in.CreatedAt.Format(time.RFC3339)
	}
	return []string{
		in.ID,
		in.ChannelID,
		in.Title,
		in.Category,
		strings.Join(in.Tags, ";"),
		in.ProblemAddressed,
		in.Description,
		in.SourceContext.PodcastName,
		in.SourceContext.EpisodeTitle,
		createdAt,
	}
}

func writeCSV(w io.Writer, insights []*models.Insight) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, in := range insights {
		if err := cw.Write(row(in)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeXLSX(w io.Writer, insights []*models.Insight) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"

	cells := make([]interface{}, len(header))
	for i, h := range header {
		cells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &cells); err != nil {
		return err
	}

	for i, in := range insights {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row(in)
		rowCells := make([]interface{}, len(values))
		for j, v := range values {
			rowCells[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &rowCells); err != nil {
			return err
		}
	}

	return f.Write(w)
}
