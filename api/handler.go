package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/verifactura/invoice-verify-service/internal/db"
	"github.com/verifactura/invoice-verify-service/internal/models"
	"github.com/verifactura/invoice-verify-service/internal/ocr"
	"github.com/verifactura/invoice-verify-service/internal/storage"
	"github.com/verifactura/invoice-verify-service/internal/verify"
)

const (
	MaxUploadSize = 10 * 1024 * 1024 // 10MB
	Version       = "1.0.0"
)

// Handler handles HTTP requests for invoice verification
type Handler struct {
	config *models.Config
}

// NewHandler creates a new API handler
func NewHandler(config *models.Config) *Handler {
	return &Handler{
		config: config,
	}
}

// SetupRoutes configures the HTTP routes
func (h *Handler) SetupRoutes() *mux.Router {
	router := mux.NewRouter()

	// Main endpoint
	router.HandleFunc("/api/verify-invoice", h.VerifyInvoice).Methods("POST")
	router.HandleFunc("/api/verifications", h.GetVerifications).Methods("GET")

	// Verification CRUD
	router.HandleFunc("/api/verification/{id}", h.GetVerification).Methods("GET")
	router.HandleFunc("/api/verification/{id}", h.DeleteVerification).Methods("DELETE")

	// Statistics
	router.HandleFunc("/api/stats", h.GetStats).Methods("GET")

	// Health check
	router.HandleFunc("/health", h.Health).Methods("GET")

	return router
}

// HealthResponse represents the health check response structure
type HealthResponse struct {
	Status      string        `json:"status"`
	Version     string        `json:"version"`
	Timestamp   string        `json:"timestamp"`
	Uptime      string        `json:"uptime"`
	Memory      MemoryStats   `json:"memory"`
	Tesseract   ServiceStatus `json:"tesseract"`
	ImageMagick ServiceStatus `json:"imageMagick"`
	Database    ServiceStatus `json:"database"`
	Storage     ServiceStatus `json:"storage"`
	OCREngine   string        `json:"ocrEngine"`
}

// MemoryStats represents memory usage statistics
type MemoryStats struct {
	Allocated string `json:"allocated"`
	Total     string `json:"total"`
	System    string `json:"system"`
}

// ServiceStatus represents the status of a service dependency
type ServiceStatus struct {
	Available bool   `json:"available"`
	Version   string `json:"version,omitempty"`
	Error     string `json:"error,omitempty"`
}

var startTime = time.Now()

// Health endpoint - enhanced for monitoring
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	tesseractStatus := h.checkTesseract()
	imageMagickStatus := h.checkImageMagick()
	databaseStatus := h.checkDatabase()
	storageStatus := h.checkStorage()

	response := HealthResponse{
		Status:    "healthy",
		Version:   Version,
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    time.Since(startTime).String(),
		Memory: MemoryStats{
			Allocated: fmt.Sprintf("%.2f MB", float64(m.Alloc)/1024/1024),
			Total:     fmt.Sprintf("%.2f MB", float64(m.TotalAlloc)/1024/1024),
			System:    fmt.Sprintf("%.2f MB", float64(m.Sys)/1024/1024),
		},
		Tesseract:   tesseractStatus,
		ImageMagick: imageMagickStatus,
		Database:    databaseStatus,
		Storage:     storageStatus,
		OCREngine:   h.config.OCR.Engine,
	}

	// Tesseract is only critical when it is the configured engine
	if h.config.OCR.Engine == "tesseract" && !tesseractStatus.Available {
		response.Status = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	json.NewEncoder(w).Encode(response)
}

// checkTesseract verifies Tesseract OCR is available
func (h *Handler) checkTesseract() ServiceStatus {
	cmd := exec.Command("tesseract", "--version")
	output, err := cmd.CombinedOutput()

	if err != nil {
		return ServiceStatus{
			Available: false,
			Error:     "tesseract not found or not executable",
		}
	}

	version := "unknown"
	lines := strings.Split(string(output), "\n")
	if len(lines) > 0 {
		version = strings.TrimSpace(lines[0])
	}

	return ServiceStatus{
		Available: true,
		Version:   version,
	}
}

// checkImageMagick verifies ImageMagick is available
func (h *Handler) checkImageMagick() ServiceStatus {
	cmd := exec.Command("convert", "-version")
	output, err := cmd.CombinedOutput()

	if err != nil {
		return ServiceStatus{
			Available: false,
			Error:     "imagemagick not found or not executable",
		}
	}

	version := "unknown"
	lines := strings.Split(string(output), "\n")
	if len(lines) > 0 {
		version = strings.TrimSpace(lines[0])
	}

	return ServiceStatus{
		Available: true,
		Version:   version,
	}
}

// checkDatabase verifies PostgreSQL connection
func (h *Handler) checkDatabase() ServiceStatus {
	if db.Pool == nil {
		return ServiceStatus{
			Available: false,
			Error:     "database pool not initialized",
		}
	}

	return ServiceStatus{
		Available: true,
		Version:   "PostgreSQL",
	}
}

// checkStorage verifies MinIO connection
func (h *Handler) checkStorage() ServiceStatus {
	if storage.Client == nil {
		return ServiceStatus{
			Available: false,
			Error:     "storage client not initialized",
		}
	}

	return ServiceStatus{
		Available: true,
		Version:   "MinIO S3",
	}
}

// VerifyInvoice runs OCR on an uploaded invoice image and checks its
// arithmetic: line totals against quantity x price and the invoice total
// against the sum of lines.
func (h *Handler) VerifyInvoice(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx := r.Context()
	requestStart := time.Now()

	// Parse multipart form
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		h.sendError(w, http.StatusBadRequest, "File too large or invalid form data")
		return
	}

	// Get file - accept both "file" and "image" field names
	file, header, err := r.FormFile("file")
	if err != nil {
		file, header, err = r.FormFile("image")
		if err != nil {
			h.sendError(w, http.StatusBadRequest, "No file provided (use 'file' or 'image' field)")
			return
		}
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, "Failed to read file")
		return
	}

	// Optional overrides
	engineName := r.FormValue("engine")
	if engineName == "" {
		engineName = h.config.OCR.Engine
	}
	language := r.FormValue("language")

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	filename := fmt.Sprintf("%s_%s%s",
		time.Now().Format("20060102_150405"),
		uuid.New().String()[:8],
		storage.GetFileExtension(contentType),
	)

	// Upload to MinIO (if configured)
	var imagenURL string
	if storage.Client != nil {
		imageReader := bytes.NewReader(imageData)
		imagenURL, err = storage.UploadInvoiceImage(
			ctx,
			filename,
			imageReader,
			int64(len(imageData)),
			contentType,
		)
		if err != nil {
			// Log but don't fail - image storage is optional
			fmt.Printf("Warning: failed to upload image to MinIO: %v\n", err)
		}
	}

	engine, err := ocr.NewEngine(engineName, h.engineConfig(language))
	if err != nil {
		h.sendError(w, http.StatusBadRequest, fmt.Sprintf("OCR engine unavailable: %v", err))
		return
	}

	// Preprocess with grayscale+contrast for Tesseract; vision models read
	// the original color image better
	ocrInput := imageData
	if engine.Name() == "tesseract" && h.config.OCR.Preprocess {
		preprocessor := ocr.NewPreprocessor()
		if processed, err := preprocessor.PreprocessImageFromBytes(imageData); err == nil {
			ocrInput = processed
		}
	}

	ocrStart := time.Now()
	rawText, err := engine.ExtractText(ctx, ocrInput)
	ocrDuration := time.Since(ocrStart).Seconds()
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, fmt.Sprintf("OCR failed: %v", err))
		return
	}

	result := verify.Verify(rawText)
	summary := models.NewSummary(result)

	// Persist (if configured)
	savedID := ""
	if db.Pool != nil {
		resultJSON, _ := json.Marshal(result)
		totalCalc, _ := summary.TotalCalculado.Float64()
		ivaCalc, _ := summary.IVACalculado.Float64()

		v := &db.Verification{
			Archivo:         header.Filename,
			Layout:          summary.Layout,
			TotalCalculado:  totalCalc,
			IVACalculado:    ivaCalc,
			Cuadra:          summary.Cuadra,
			LineasTotal:     summary.Lineas,
			LineasCuadradas: summary.LineasCuadradas,
			ImagenURL:       imagenURL,
			OCRRaw:          rawText,
			ResultJSON:      string(resultJSON),
		}
		if summary.TotalReportado != nil {
			reported, _ := summary.TotalReportado.Float64()
			v.TotalReportado = &reported
		}

		if err := db.SaveVerification(ctx, v); err != nil {
			fmt.Printf("Warning: failed to save verification to DB: %v\n", err)
		} else {
			savedID = v.ID.String()
		}
	}

	responseData := map[string]interface{}{
		"success":       true,
		"summary":       summary,
		"result":        result,
		"engine":        engine.Name(),
		"ocrDuration":   ocrDuration,
		"totalDuration": time.Since(requestStart).Seconds(),
		"saved_to_db":   savedID != "",
	}
	if savedID != "" {
		responseData["id"] = savedID
	}
	if imagenURL != "" {
		responseData["imagen_url"] = imagenURL
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(responseData)
}

// GetVerifications returns the most recent verifications
func (h *Handler) GetVerifications(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx := r.Context()

	if db.Pool == nil {
		h.sendError(w, http.StatusServiceUnavailable, "database not available")
		return
	}

	verifications, err := db.GetVerifications(ctx, 100)
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, fmt.Sprintf("failed to get verifications: %v", err))
		return
	}

	// Generate presigned URLs for images
	for i := range verifications {
		if verifications[i].ImagenURL != "" && storage.Client != nil {
			if presignedURL, err := storage.GetPresignedURL(ctx, verifications[i].ImagenURL); err == nil {
				verifications[i].ImagenURL = presignedURL
			}
		}
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":       true,
		"verifications": verifications,
		"count":         len(verifications),
	})
}

// GetVerification returns a single verification
func (h *Handler) GetVerification(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx := r.Context()

	if db.Pool == nil {
		h.sendError(w, http.StatusServiceUnavailable, "database not available")
		return
	}

	vars := mux.Vars(r)
	verificationID := vars["id"]

	verification, err := db.GetVerificationByID(ctx, verificationID)
	if err != nil {
		h.sendError(w, http.StatusNotFound, fmt.Sprintf("verification not found: %v", err))
		return
	}

	if verification.ImagenURL != "" && storage.Client != nil {
		if presignedURL, err := storage.GetPresignedURL(ctx, verification.ImagenURL); err == nil {
			verification.ImagenURL = presignedURL
		}
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":      true,
		"verification": verification,
	})
}

// DeleteVerification removes a verification
func (h *Handler) DeleteVerification(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx := r.Context()

	if db.Pool == nil {
		h.sendError(w, http.StatusServiceUnavailable, "database not available")
		return
	}

	vars := mux.Vars(r)
	verificationID := vars["id"]

	// Optionally: delete image from MinIO
	if storage.Client != nil {
		verification, err := db.GetVerificationByID(ctx, verificationID)
		if err == nil && verification.ImagenURL != "" {
			// Delete image (ignore errors)
			_ = storage.DeleteImage(ctx, verification.ImagenURL)
		}
	}

	if err := db.DeleteVerification(ctx, verificationID); err != nil {
		h.sendError(w, http.StatusInternalServerError, "failed to delete verification")
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "verification deleted",
	})
}

// GetStats returns monthly statistics
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx := r.Context()

	if db.Pool == nil {
		h.sendError(w, http.StatusServiceUnavailable, "database not available")
		return
	}

	stats, err := db.GetMonthlyStats(ctx)
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, "failed to get stats")
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"stats":   stats,
	})
}

// engineConfig returns a copy of the service config with the per-request
// language override applied, leaving the shared config untouched.
func (h *Handler) engineConfig(language string) *models.Config {
	cfg := *h.config
	if language != "" {
		cfg.OCR.Language = language
	}
	return &cfg
}

// sendError sends an error response
func (h *Handler) sendError(w http.ResponseWriter, statusCode int, message string) {
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}
