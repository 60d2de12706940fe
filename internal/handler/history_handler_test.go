package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/contentguard-api/internal/dto"
	"github.com/noah-isme/contentguard-api/internal/fixtures"
	"github.com/noah-isme/contentguard-api/internal/middleware"
	"github.com/noah-isme/contentguard-api/internal/models"
	"github.com/noah-isme/contentguard-api/internal/repository"
	"github.com/noah-isme/contentguard-api/internal/service"
	appErrors "github.com/noah-isme/contentguard-api/pkg/errors"
)

type fakeExportSrv struct {
	lastReq  dto.HistoryExportRequest
	filePath string
}

func (f *fakeExportSrv) CreateJob(_ context.Context, _ models.Identity, req dto.HistoryExportRequest) (*dto.ExportJobResponse, error) {
	f.lastReq = req
	return &dto.ExportJobResponse{ID: "job-1", Status: models.ExportStatusQueued}, nil
}

func (f *fakeExportSrv) GetStatus(_ context.Context, _ models.Identity, id string) (*models.ExportJob, error) {
	if id != "job-1" {
		return nil, appErrors.ErrNotFound
	}
	return &models.ExportJob{ID: id, Status: models.ExportStatusFinished, Progress: 100}, nil
}

func (f *fakeExportSrv) ResolveDownload(_ context.Context, token string) (*service.HistoryDownload, error) {
	if token != "good" {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "invalid or expired download token")
	}
	file, err := os.Open(f.filePath)
	if err != nil {
		return nil, err
	}
	return &service.HistoryDownload{File: file, Filename: filepath.Base(f.filePath), Format: models.ExportFormatCSV}, nil
}

func newHistoryRouter(t *testing.T, exports *fakeExportSrv) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	history := service.NewHistoryService(repository.NewContentRepository(fixtures.Content()), nil, nil, 2)
	h := NewHistoryHandler(history, exports)

	r := gin.New()
	r.GET("/history/exports/download/:token", h.Download)
	g := r.Group("/history", middleware.SessionGate(authorizerStub{identity: adminIdentity}))
	g.GET("", h.List)
	g.POST("/exports", h.CreateExport)
	g.GET("/exports/:id", h.ExportStatus)
	return r
}

func TestHistoryHandlerListPaginates(t *testing.T) {
	r := newHistoryRouter(t, &fakeExportSrv{})

	rec := doJSON(t, r, http.MethodGet, "/history?page=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	var items []models.ContentItem
	require.NoError(t, json.Unmarshal(envelope.Data, &items))
	require.Len(t, items, 2)
	assert.Equal(t, "c6", items[0].ID)
	assert.EqualValues(t, 2, envelope.Pagination["page"])
	assert.EqualValues(t, 3, envelope.Pagination["totalPages"])

	rec = doJSON(t, r, http.MethodGet, "/history?page=2&decision=rejected", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decodeEnvelope(t, rec).Pagination["page"])

	rec = doJSON(t, r, http.MethodGet, "/history?dateRange=decade", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistoryHandlerExports(t *testing.T) {
	exports := &fakeExportSrv{}
	r := newHistoryRouter(t, exports)

	rec := doJSON(t, r, http.MethodPost, "/history/exports", dto.HistoryExportRequest{Format: "csv", Filter: models.HistoryFilter{Decision: "approved"}})
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "approved", exports.lastReq.Filter.Decision)

	rec = doJSON(t, r, http.MethodGet, "/history/exports/job-1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, r, http.MethodGet, "/history/exports/job-2", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHistoryHandlerDownload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history_job-1.csv")
	require.NoError(t, os.WriteFile(path, []byte("ID\nc4\n"), 0o600))
	r := newHistoryRouter(t, &fakeExportSrv{filePath: path})

	rec := doJSON(t, r, http.MethodGet, "/history/exports/download/good", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "history_job-1.csv")
	assert.Equal(t, "ID\nc4\n", rec.Body.String())

	rec = doJSON(t, r, http.MethodGet, "/history/exports/download/bad", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
