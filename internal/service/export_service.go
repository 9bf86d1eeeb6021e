package service

import (
	"bufio"
	"encoding/csv"
	"io"
	"llm_survey_backend/internal/model"
	"llm_survey_backend/internal/repository"
	"strings"
)

const FeedbackCSVFilename = "llm_feedback.csv"

type ExportService struct {
	Repo *repository.FeedbackRepository
	// QuoteFields switches from plain comma joining to RFC 4180 quoting.
	QuoteFields bool
}

func NewExportService(repo *repository.FeedbackRepository, quoteFields bool) *ExportService {
	return &ExportService{Repo: repo, QuoteFields: quoteFields}
}

func (s *ExportService) FeedbackTable() (*model.FeedbackTable, error) {
	return s.Repo.DumpAll()
}

// CellValues converts a row to strings, NULL becoming "".
func CellValues(row []*string) []string {
	out := make([]string, len(row))
	for i, v := range row {
		if v != nil {
			out[i] = *v
		}
	}
	return out
}

// WriteFeedbackCSV writes the column header followed by every feedback row.
// Without QuoteFields values are joined by commas as-is, so embedded commas
// or newlines are not escaped.
func (s *ExportService) WriteFeedbackCSV(w io.Writer) error {
	table, err := s.Repo.DumpAll()
	if err != nil {
		return err
	}
	return s.WriteTable(w, table)
}

// WriteTable writes an already loaded table.
func (s *ExportService) WriteTable(w io.Writer, table *model.FeedbackTable) error {
	if s.QuoteFields {
		cw := csv.NewWriter(w)
		if err := cw.Write(table.Columns); err != nil {
			return err
		}
		for _, row := range table.Rows {
			if err := cw.Write(CellValues(row)); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(table.Columns, ",") + "\n"); err != nil {
		return err
	}
	for _, row := range table.Rows {
		if _, err := bw.WriteString(strings.Join(CellValues(row), ",") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
