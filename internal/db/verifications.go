package db

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Verification struct {
	ID              uuid.UUID  `json:"id"`
	Archivo         string     `json:"archivo"`
	Layout          string     `json:"layout"`
	TotalCalculado  float64    `json:"total_calculado"`
	IVACalculado    float64    `json:"iva_calculado"`
	TotalReportado  *float64   `json:"total_reportado,omitempty"`
	Cuadra          *bool      `json:"cuadra,omitempty"`
	LineasTotal     int        `json:"lineas_total"`
	LineasCuadradas int        `json:"lineas_cuadradas"`
	ImagenURL       string     `json:"imagen_url"`
	OCRRaw          string     `json:"ocr_raw"`
	ResultJSON      string     `json:"result_json"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

func SaveVerification(ctx context.Context, v *Verification) error {
	query := `
		INSERT INTO verificaciones (
			archivo, layout, total_calculado, iva_calculado, total_reportado,
			cuadra, lineas_total, lineas_cuadradas, imagen_url, ocr_raw, result_json
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`

	err := Pool.QueryRow(ctx, query,
		v.Archivo, v.Layout, v.TotalCalculado, v.IVACalculado, v.TotalReportado,
		v.Cuadra, v.LineasTotal, v.LineasCuadradas, v.ImagenURL, v.OCRRaw, v.ResultJSON,
	).Scan(&v.ID, &v.CreatedAt)

	return err
}

func GetVerifications(ctx context.Context, limit int) ([]Verification, error) {
	query := `
		SELECT id, COALESCE(archivo, ''), COALESCE(layout, ''),
		       COALESCE(total_calculado, 0), COALESCE(iva_calculado, 0), total_reportado,
		       cuadra, COALESCE(lineas_total, 0), COALESCE(lineas_cuadradas, 0),
		       COALESCE(imagen_url, ''), created_at
		FROM verificaciones
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var verifications []Verification
	for rows.Next() {
		var v Verification
		err := rows.Scan(
			&v.ID, &v.Archivo, &v.Layout,
			&v.TotalCalculado, &v.IVACalculado, &v.TotalReportado,
			&v.Cuadra, &v.LineasTotal, &v.LineasCuadradas,
			&v.ImagenURL, &v.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		verifications = append(verifications, v)
	}

	return verifications, nil
}

// GetVerificationByID retrieves a single verification by ID
func GetVerificationByID(ctx context.Context, verificationID string) (*Verification, error) {
	query := `
		SELECT id, COALESCE(archivo, ''), COALESCE(layout, ''),
		       COALESCE(total_calculado, 0), COALESCE(iva_calculado, 0), total_reportado,
		       cuadra, COALESCE(lineas_total, 0), COALESCE(lineas_cuadradas, 0),
		       COALESCE(imagen_url, ''), COALESCE(ocr_raw, ''), COALESCE(result_json::text, ''),
		       created_at, updated_at
		FROM verificaciones
		WHERE id = $1
	`

	var v Verification
	err := Pool.QueryRow(ctx, query, verificationID).Scan(
		&v.ID, &v.Archivo, &v.Layout,
		&v.TotalCalculado, &v.IVACalculado, &v.TotalReportado,
		&v.Cuadra, &v.LineasTotal, &v.LineasCuadradas,
		&v.ImagenURL, &v.OCRRaw, &v.ResultJSON,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// DeleteVerification removes a verification
func DeleteVerification(ctx context.Context, verificationID string) error {
	query := "DELETE FROM verificaciones WHERE id = $1"
	_, err := Pool.Exec(ctx, query, verificationID)
	return err
}

// MonthlyStats represents monthly verification statistics
type MonthlyStats struct {
	Month                 string  `json:"month"`
	TotalVerificaciones   int     `json:"total_verificaciones"`
	TotalCuadradas        int     `json:"total_cuadradas"`
	PorcentajeCuadradas   float64 `json:"porcentaje_cuadradas"`
	SumaTotalesCalculados float64 `json:"suma_totales_calculados"`
}

// GetMonthlyStats returns verification statistics for the current month
func GetMonthlyStats(ctx context.Context) (*MonthlyStats, error) {
	query := `
		SELECT
			COUNT(*) as total_verificaciones,
			COALESCE(SUM(CASE WHEN cuadra THEN 1 ELSE 0 END), 0) as total_cuadradas,
			COALESCE(SUM(total_calculado), 0) as suma_totales
		FROM verificaciones
		WHERE DATE_TRUNC('month', created_at) = DATE_TRUNC('month', CURRENT_DATE)
	`

	stats := &MonthlyStats{
		Month: time.Now().Format("2006-01"),
	}

	err := Pool.QueryRow(ctx, query).Scan(
		&stats.TotalVerificaciones,
		&stats.TotalCuadradas,
		&stats.SumaTotalesCalculados,
	)
	if err != nil {
		return nil, err
	}

	if stats.TotalVerificaciones > 0 {
		stats.PorcentajeCuadradas = float64(stats.TotalCuadradas) / float64(stats.TotalVerificaciones) * 100
	}

	return stats, nil
}
