package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/lquispe/exam-renamer/constants"
	"github.com/lquispe/exam-renamer/internal/analyze"
	"github.com/lquispe/exam-renamer/internal/common"
	"github.com/lquispe/exam-renamer/internal/export"
	"github.com/lquispe/exam-renamer/internal/ingest"
	"github.com/lquispe/exam-renamer/internal/journal"
	"github.com/lquispe/exam-renamer/internal/ocr"
	"github.com/lquispe/exam-renamer/internal/pipeline"
)

func main() {
	var (
		rename     = flag.Bool("rename", false, "apply renames (default is a dry run)")
		watch      = flag.Bool("watch", false, "keep watching the folder for new PDFs")
		reportPath = flag.String("report", "", "write an XLSX report of the run to this path")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: exam-renamer [flags] <folder>\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	root := flag.Arg(0)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	store, err := journal.Open(cfg.Journal.Path, logger)
	if err != nil {
		logger.Error("failed to open rename journal", "path", cfg.Journal.Path, "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Error("close journal", "error", cerr)
		}
	}()

	files, err := ingest.DiscoverPDFs(root)
	if err != nil {
		logger.Error("failed to scan folder", "root", root, "error", err)
		os.Exit(1)
	}
	if len(files) == 0 && !*watch {
		logger.Info("no PDF files found", "root", root)
		os.Exit(0)
	}
	logger.Info("found PDF files", "root", root, "count", len(files))

	var jobs []pipeline.Job
	for _, path := range files {
		jobs = append(jobs, processOne(ctx, proc, store, path, *rename, logger))
	}

	if *watch {
		evCh, errCh, werr := ingest.StartWatcher(ctx, ingest.WatchConfig{
			Roots:    []string{root},
			Debounce: cfg.Watch.Debounce,
		})
		if werr != nil {
			logger.Error("failed to start watcher", "root", root, "error", werr)
			os.Exit(1)
		}
		logger.Info("watching for new PDFs", "root", root)
		for evCh != nil || errCh != nil {
			select {
			case path, ok := <-evCh:
				if !ok {
					evCh = nil
					continue
				}
				jobs = append(jobs, processOne(ctx, proc, store, path, *rename, logger))
			case _, ok := <-errCh:
				if !ok {
					errCh = nil
				}
			}
		}
	}

	summarize(jobs, *rename, logger)

	if *reportPath != "" {
		data, err := export.ReportXLSX(jobs, logger)
		if err != nil {
			logger.Error("failed to build report", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*reportPath, data, 0o644); err != nil {
			logger.Error("failed to write report", "path", *reportPath, "error", err)
			os.Exit(1)
		}
		logger.Info("report written", "path", *reportPath)
	}
}

// processOne analyzes a file, journals the decision, and optionally
// applies the rename with a collision-safe target name.
func processOne(ctx context.Context, proc *pipeline.Processor, store *journal.Store, path string, apply bool, logger *slog.Logger) pipeline.Job {
	job := proc.ProcessFile(ctx, path)

	status := constants.JobStatusAnalyzed
	if !job.Result.Success {
		status = constants.JobStatusFailed
	}
	entry, err := store.Record(ctx, journal.Entry{
		ID:             job.ID,
		OriginalPath:   path,
		SuggestedName:  job.Result.SuggestedName,
		IdentityNumber: job.Result.Defaults[constants.FieldIdentityNumber],
		Status:         status,
		Notes:          strings.Join(job.Result.Notes, "; "),
	})
	if err != nil {
		logger.Error("failed to journal decision", "path", path, "error", err)
	}

	if !apply || !job.Result.Success {
		return job
	}

	target := collisionSafeTarget(path, job.Result.SuggestedName)
	if target == "" {
		return job
	}
	if err := os.Rename(path, target); err != nil {
		logger.Error("rename failed", "from", path, "to", target, "error", err)
		return job
	}
	logger.Info("renamed", "from", filepath.Base(path), "to", filepath.Base(target))
	if err := store.MarkRenamed(ctx, entry.ID, filepath.Base(target)); err != nil {
		logger.Error("failed to journal rename", "path", target, "error", err)
	}
	return job
}

// collisionSafeTarget picks a target path next to src, appending _1, _2…
// before the extension while the name is taken. Returns "" when src
// already carries the suggested name.
func collisionSafeTarget(src, suggested string) string {
	dir := filepath.Dir(src)
	target := filepath.Join(dir, suggested)
	if target == src {
		return ""
	}
	base := strings.TrimSuffix(suggested, ".pdf")
	for counter := 1; ; counter++ {
		if _, err := os.Stat(target); os.IsNotExist(err) {
			return target
		}
		target = filepath.Join(dir, fmt.Sprintf("%s_%d.pdf", base, counter))
	}
}

func summarize(jobs []pipeline.Job, applied bool, logger *slog.Logger) {
	ok, failed := 0, 0
	for _, j := range jobs {
		if j.Result.Success {
			ok++
		} else {
			failed++
		}
	}
	logger.Info("run summary", "processed", len(jobs), "suggested", ok, "insufficient", failed, "applied", applied)
	if !applied {
		logger.Info("dry run only; re-run with -rename to apply")
	}
}
