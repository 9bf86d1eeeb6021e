package cmd

import (
	"io"
	"llm_survey_backend/internal/repository"
	"llm_survey_backend/internal/service"
	"llm_survey_backend/pkg/database"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all feedback rows as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		db, err := database.InitDB(&cfg.Database, "release")
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}

		svc := service.NewExportService(repository.NewFeedbackRepository(db), cfg.Export.QuoteFields)
		path, _ := cmd.Flags().GetString("out")
		if path == "" || path == "-" {
			return svc.WriteFeedbackCSV(cmd.OutOrStdout())
		}
		return writeFile(path, svc.WriteFeedbackCSV)
	},
}

// createFile is replaced in tests.
var createFile = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// writeFile writes through write and reports a failed close when the write
// itself succeeded.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}

func init() {
	exportCmd.Flags().StringP("out", "o", service.FeedbackCSVFilename, "Output file, or - for stdout")
}
