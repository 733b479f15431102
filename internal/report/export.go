package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/phrazzld/task-manager-api/internal/domain"
)

// Format is an export format.
type Format string

// Supported export formats.
const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ErrUnknownFormat is returned for an export format that is not supported.
var ErrUnknownFormat = errors.New("unknown export format")

// csvHeader is the first row of every CSV export.
var csvHeader = []string{"id", "title", "description", "completed", "created_at"}

// ParseFormat resolves a format name case-insensitively. An empty name
// selects JSON.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// ContentType is the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/json"
}

// Filename is the download name for an export in this format.
func (f Format) Filename() string {
	return "tasks." + string(f)
}

type exportRecord struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"created_at"`
}

// Export writes tasks to w in the given format, in the order given.
func Export(w io.Writer, tasks []domain.Task, format Format) error {
	switch format {
	case FormatJSON:
		records := make([]exportRecord, 0, len(tasks))
		for _, t := range tasks {
			records = append(records, exportRecord{
				ID:          t.ID,
				Title:       t.Title,
				Description: t.Description,
				Completed:   t.Completed,
				CreatedAt:   domain.FormatTimestamp(t.CreatedAt),
			})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)

	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(csvHeader); err != nil {
			return err
		}
		for _, t := range tasks {
			row := []string{
				t.ID,
				t.Title,
				t.Description,
				strconv.FormatBool(t.Completed),
				domain.FormatTimestamp(t.CreatedAt),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()

	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}
}
