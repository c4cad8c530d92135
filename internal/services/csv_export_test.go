package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ridemedia-backend/internal/apperrors"
	"ridemedia-backend/internal/models"
)

func TestExportCSVBasic(t *testing.T) {
	records := []models.Record{
		{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}},
		{{Key: "a", Value: "3"}, {Key: "b", Value: "4"}},
	}

	data, err := ExportCSV(records)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n\"1\",\"2\"\n\"3\",\"4\"", string(data))
}

func TestExportCSVEmpty(t *testing.T) {
	_, err := ExportCSV(nil)
	assert.ErrorIs(t, err, apperrors.ErrEmptyExport)
}

func TestExportCSVEscapesQuotes(t *testing.T) {
	records := []models.Record{{{Key: "name", Value: `Acme "Best" Ads, Inc`}}}

	data, err := ExportCSV(records)
	require.NoError(t, err)
	assert.Equal(t, "name\n\"Acme \"\"Best\"\" Ads, Inc\"", string(data))
}

func TestExportCSVUsesUnionOfKeys(t *testing.T) {
	records := []models.Record{
		{{Key: "id", Value: "1"}, {Key: "status", Value: "pending"}},
		{{Key: "id", Value: "2"}, {Key: "photo_id", Value: "p-2"}, {Key: "status", Value: "approved"}},
	}

	data, err := ExportCSV(records)
	require.NoError(t, err)
	assert.Equal(t, "id,status,photo_id\n\"1\",\"pending\",\"\"\n\"2\",\"approved\",\"p-2\"", string(data))
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "test_2024-03-09.csv", ExportFilename("test", now))
}
