package service

import (
	"context"
	"encoding/csv"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/contentguard-api/internal/fixtures"
	"github.com/noah-isme/contentguard-api/internal/models"
	"github.com/noah-isme/contentguard-api/pkg/storage"
)

func newExportServiceForTest(t *testing.T) (*ExportService, *storage.LocalStorage) {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("secret", time.Hour)
	cfg := ExportConfig{APIPrefix: "/api/v1/", ResultTTL: time.Hour}
	return NewExportService(store, signer, cfg, zap.NewNop(), nil, nil), store
}

func decidedFixtures() []models.ContentItem {
	return FilterHistory(fixtures.Content(), models.HistoryFilter{}, time.Date(2023, 10, 15, 12, 0, 0, 0, time.UTC))
}

func TestHistoryDataset(t *testing.T) {
	data := HistoryDataset(decidedFixtures())

	require.Len(t, data.Rows, 5)
	assert.Equal(t, "ID", data.Columns[0].Title)
	c5 := data.Rows[1]
	assert.Equal(t, "c5", c5["id"])
	assert.Equal(t, "rejected", c5["decision"])
	assert.Equal(t, models.CategoryHateSpeech.Label(), c5["category"])
	assert.Equal(t, "Moderator 2", c5["moderator"])
	assert.NotEmpty(t, c5["notes"])
}

func TestExportServiceGenerateCSV(t *testing.T) {
	svc, store := newExportServiceForTest(t)
	job := models.ExportJob{ID: "job-1", Format: models.ExportFormatCSV}

	result, err := svc.Generate(context.Background(), job, decidedFixtures())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.URL, "/api/v1/history/exports/download/"))
	assert.True(t, strings.HasSuffix(result.URL, result.Token))

	ticket, err := svc.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "job-1", ticket.JobID)
	assert.Equal(t, result.RelativePath, ticket.Path)

	f, err := store.Open(result.RelativePath)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 6)
	assert.Equal(t, "ID", records[0][0])
	assert.Equal(t, "c4", records[1][0])
}

func TestExportServiceGeneratePDF(t *testing.T) {
	svc, store := newExportServiceForTest(t)
	job := models.ExportJob{ID: "job-2", Format: models.ExportFormatPDF}

	result, err := svc.Generate(context.Background(), job, decidedFixtures())
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(result.RelativePath, ".pdf"))

	f, err := store.Open(result.RelativePath)
	require.NoError(t, err)
	defer f.Close()
	head := make([]byte, 4)
	_, err = io.ReadFull(f, head)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(head))
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc, _ := newExportServiceForTest(t)
	_, err := svc.Generate(context.Background(), models.ExportJob{ID: "job-3", Format: "xlsx"}, nil)
	assert.Error(t, err)
}
