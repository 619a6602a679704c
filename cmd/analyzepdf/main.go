package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/lquispe/exam-renamer/internal/analyze"
	"github.com/lquispe/exam-renamer/internal/common"
	"github.com/lquispe/exam-renamer/internal/ocr"
	"github.com/lquispe/exam-renamer/internal/pipeline"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "analyzepdf <file.pdf>")
		os.Exit(2)
	}
	path := os.Args[1]

	cfg := common.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	extractor := ocr.NewExtractor(ctx, ocr.Config{
		Pdftotext:   cfg.OCR.Pdftotext,
		Pdftoppm:    cfg.OCR.Pdftoppm,
		Pdfinfo:     cfg.OCR.Pdfinfo,
		Tesseract:   cfg.OCR.Tesseract,
		TessdataDir: cfg.OCR.TessdataDir,
		DPI:         cfg.OCR.DPI,
		MaxPages:    cfg.OCR.MaxPages,
	}, logger)

	proc := pipeline.NewProcessor(logger, pipeline.NewOCRAcquirer(extractor), analyze.NewAnalyzer(logger))
	job := proc.ProcessFile(ctx, path)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(job.Result); err != nil {
		logger.Error("encode result", "error", err)
		os.Exit(1)
	}
	if !job.Result.Success {
		os.Exit(1)
	}
}
