package services

import (
	"fmt"
	"strings"
	"time"

	"ridemedia-backend/internal/apperrors"
	"ridemedia-backend/internal/models"
)

// CSVExport - готовый к скачиванию файл
type CSVExport struct {
	Filename string
	Data     []byte
}

// ExportCSV строит CSV: заголовок - объединение ключей всех записей в порядке
// первого появления, каждое значение в двойных кавычках, кавычки внутри удваиваются.
func ExportCSV(records []models.Record) ([]byte, error) {
	if len(records) == 0 {
		return nil, apperrors.ErrEmptyExport
	}

	var columns []string
	seen := make(map[string]bool)
	for _, record := range records {
		for _, field := range record {
			if !seen[field.Key] {
				seen[field.Key] = true
				columns = append(columns, field.Key)
			}
		}
	}

	lines := make([]string, 0, len(records)+1)
	lines = append(lines, strings.Join(columns, ","))
	for _, record := range records {
		cells := make([]string, len(columns))
		for i, column := range columns {
			value, _ := record.Get(column)
			cells[i] = quoteCSV(value)
		}
		lines = append(lines, strings.Join(cells, ","))
	}

	return []byte(strings.Join(lines, "\n")), nil
}

func quoteCSV(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

// ExportFilename возвращает имя вида driver_applications_2024-05-01.csv
func ExportFilename(name string, now time.Time) string {
	return fmt.Sprintf("%s_%s.csv", name, now.UTC().Format("2006-01-02"))
}
