package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verifactura/invoice-verify-service/internal/models"
)

func testConfig() *models.Config {
	return &models.Config{
		Port: 8080,
		Host: "127.0.0.1",
		OCR: models.OCRConfig{
			Engine:   "tesseract",
			Language: "spa+eng",
		},
	}
}

func TestHealthEndpoint(t *testing.T) {
	handler := NewHandler(testConfig())
	router := handler.SetupRoutes()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, Version, resp.Version)
	assert.Contains(t, []string{"healthy", "degraded"}, resp.Status)
	assert.Equal(t, "tesseract", resp.OCREngine)
	assert.False(t, resp.Database.Available)
	assert.False(t, resp.Storage.Available)
}

func TestVerifyInvoiceRequiresFile(t *testing.T) {
	handler := NewHandler(testConfig())
	router := handler.SetupRoutes()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("engine", "tesseract"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/verify-invoice", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No file provided")
}

func TestVerifyInvoiceRejectsUnconfiguredEngine(t *testing.T) {
	handler := NewHandler(testConfig())
	router := handler.SetupRoutes()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "factura.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("not-really-a-jpeg"))
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("engine", "openai"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/verify-invoice", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// No OpenAI API key configured
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "OCR engine unavailable")
}

func TestEngineConfigLanguageOverride(t *testing.T) {
	handler := NewHandler(testConfig())

	cfg := handler.engineConfig("eng")
	assert.Equal(t, "eng", cfg.OCR.Language)
	// The shared config must not pick up the request-scoped value
	assert.Equal(t, "spa+eng", handler.config.OCR.Language)

	cfg = handler.engineConfig("")
	assert.Equal(t, "spa+eng", cfg.OCR.Language)
}

func TestVerificationEndpointsWithoutDatabase(t *testing.T) {
	handler := NewHandler(testConfig())
	router := handler.SetupRoutes()

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/verifications"},
		{http.MethodGet, "/api/verification/00000000-0000-0000-0000-000000000000"},
		{http.MethodDelete, "/api/verification/00000000-0000-0000-0000-000000000000"},
		{http.MethodGet, "/api/stats"},
	} {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, "%s %s", tc.method, tc.path)
	}
}
