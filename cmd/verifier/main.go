package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/verifactura/invoice-verify-service/internal/models"
	"github.com/verifactura/invoice-verify-service/internal/ocr"
	"github.com/verifactura/invoice-verify-service/internal/verify"
)

func main() {
	dir := flag.String("dir", "images", "directory with invoice images")
	configPath := flag.String("config", "", "optional config.yaml path")
	engineName := flag.String("engine", "", "OCR engine: tesseract, openai or gemini")
	language := flag.String("lang", "", "Tesseract languages, e.g. spa+eng")
	verbose := flag.Bool("verbose", false, "print the normalized OCR text per invoice")
	noColor := flag.Bool("no-color", false, "disable colored output")
	flag.Parse()

	if *noColor {
		color.NoColor = true
	}

	config := loadConfig(*configPath)
	if *engineName != "" {
		config.OCR.Engine = *engineName
	}
	if *language != "" {
		config.OCR.Language = *language
	}

	engine, err := ocr.NewEngine(config.OCR.Engine, config)
	if err != nil {
		log.Fatalf("Failed to create OCR engine: %v", err)
	}

	images, err := listImages(*dir)
	if err != nil {
		log.Fatalf("Failed to list images in %s: %v", *dir, err)
	}
	if len(images) == 0 {
		log.Fatalf("No images found in %s", *dir)
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	ctx := context.Background()
	preprocessor := ocr.NewPreprocessor()

	var checked, matched int
	for _, path := range images {
		fmt.Printf("\n=== %s ===\n", filepath.Base(path))

		imageData, err := os.ReadFile(path)
		if err != nil {
			red.Printf("  read failed: %v\n", err)
			continue
		}

		if engine.Name() == "tesseract" && config.OCR.Preprocess {
			if processed, err := preprocessor.PreprocessImageFromBytes(imageData); err == nil {
				imageData = processed
			}
		}

		rawText, err := engine.ExtractText(ctx, imageData)
		if err != nil {
			red.Printf("  OCR failed: %v\n", err)
			continue
		}

		result := verify.Verify(rawText)
		if *verbose {
			fmt.Println("--- texto normalizado ---")
			fmt.Println(result.NormalizedText)
			fmt.Println("-------------------------")
		}

		fmt.Printf("  layout: %s\n", result.Layout)
		for _, line := range result.Lines {
			if line.Match == nil {
				fmt.Printf("    %g x %g = %.2f (total %.2f)\n",
					line.Quantity, line.UnitPrice, line.Calculated, line.LineTotal)
				continue
			}
			if *line.Match {
				green.Printf("    ✔ %g x %g = %.2f (total %.2f)\n",
					line.Quantity, line.UnitPrice, line.Calculated, line.LineTotal)
			} else {
				red.Printf("    ✘ %g x %g = %.2f pero el total dice %.2f\n",
					line.Quantity, line.UnitPrice, line.Calculated, line.LineTotal)
			}
		}

		if result.Totals == nil || result.Totals.Match == nil {
			yellow.Println("  sin total reportado para comparar")
			continue
		}

		checked++
		reported := *result.Totals.Reported
		if *result.Totals.Match {
			matched++
			green.Printf("  ✔ total calculado %.2f cuadra con el reportado %.2f\n",
				result.Totals.Calculated, reported)
		} else {
			red.Printf("  ✘ total calculado %.2f NO cuadra con el reportado %.2f\n",
				result.Totals.Calculated, reported)
		}
	}

	fmt.Println()
	fmt.Printf("Facturas procesadas: %d\n", len(images))
	if checked > 0 {
		if matched == checked {
			green.Printf("Totales que cuadran: %d/%d\n", matched, checked)
		} else {
			red.Printf("Totales que cuadran: %d/%d\n", matched, checked)
		}
	}
}

func loadConfig(path string) *models.Config {
	config := &models.Config{
		OCR: models.OCRConfig{
			Engine:     "tesseract",
			Language:   "spa+eng",
			Preprocess: true,
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("Failed to read config file: %v", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			log.Fatalf("Failed to parse config: %v", err)
		}
	}

	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		config.AI.OpenAI.APIKey = apiKey
	}
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		config.AI.Gemini.APIKey = apiKey
	}

	return config
}

func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var images []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".png", ".jpg", ".jpeg":
			images = append(images, filepath.Join(dir, entry.Name()))
		}
	}
	return images, nil
}
