// Package pipeline wires the configured providers into the three document
// analysis stages. Stages communicate through files only: each entrypoint
// reads its input path and writes its output path, so any stage can be rerun
// in isolation.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/VishnuVamsi7/DocReporter/internal/artifact"
	"github.com/VishnuVamsi7/DocReporter/internal/config"
	"github.com/VishnuVamsi7/DocReporter/internal/domain"
	"github.com/VishnuVamsi7/DocReporter/internal/logger"
	"github.com/VishnuVamsi7/DocReporter/internal/metrics"
	render "github.com/VishnuVamsi7/DocReporter/internal/report"
	"github.com/VishnuVamsi7/DocReporter/internal/repository/embcache"
	"github.com/VishnuVamsi7/DocReporter/internal/repository/reportstore"
	"github.com/VishnuVamsi7/DocReporter/internal/repository/vectordb"
	"github.com/VishnuVamsi7/DocReporter/internal/source"
	"github.com/VishnuVamsi7/DocReporter/internal/transport/openai"
	"github.com/VishnuVamsi7/DocReporter/internal/usecase/analysis"
	"github.com/VishnuVamsi7/DocReporter/internal/usecase/indexing"
	"github.com/VishnuVamsi7/DocReporter/internal/usecase/retrieval"

	dbredis "github.com/VishnuVamsi7/DocReporter/internal/db/redis"
)

// Default artifact names used by the orchestrator.
const (
	DatabaseFile = "vector_db.json"
	ReportFile   = "analysis_report.json"
	HTMLFile     = "report.html"
)

// RunIndex loads the extracted document at inPath, chunks and embeds it, and
// persists the vector database snapshot at outPath.
func RunIndex(ctx context.Context, cfg config.Config, inPath, outPath string) error {
	log := logger.FromContext(ctx).With(zap.String("stage", "index"))

	doc, err := source.Load(inPath)
	if err != nil {
		return err
	}
	log.Info("Document loaded",
		zap.String("path", inPath),
		zap.Int("chars", len(doc.Text)),
		zap.Int("pages", len(doc.Pages)),
	)

	embedder, cleanup, err := buildEmbedder(cfg, cfg.Embedding.DocumentInstruction, log)
	if err != nil {
		return err
	}
	defer cleanup()

	svc := indexing.New(embedder, cfg.Embedding.Model, cfg.Embedding.Dimensions, indexing.Config{
		Mode:       cfg.Chunking.Mode,
		ChunkSize:  cfg.Chunking.ChunkSize,
		Overlap:    cfg.Chunking.Overlap,
		TokenLimit: cfg.Chunking.TokenLimit,
		BatchSize:  cfg.Embedding.BatchSize,
		Workers:    cfg.Embedding.Workers,
	}, log)

	vdb, err := svc.BuildDatabase(ctx, doc)
	if err != nil {
		return err
	}

	if err := vectordb.Save(outPath, vdb); err != nil {
		return err
	}
	log.Info("Vector database persisted", zap.String("path", outPath), zap.Int("records", vdb.Len()))
	return nil
}

// RunAnalysis loads the vector database at inPath, runs the analysis tasks
// against the completion provider, and persists the report at outPath.
func RunAnalysis(ctx context.Context, cfg config.Config, inPath, outPath string) error {
	log := logger.FromContext(ctx).With(zap.String("stage", "analyze"))

	vdb, err := vectordb.Load(inPath)
	if err != nil {
		return err
	}
	log.Info("Vector database loaded",
		zap.String("path", inPath),
		zap.Int("records", vdb.Len()),
		zap.String("model", vdb.Model),
	)

	embedder, cleanup, err := buildEmbedder(cfg, cfg.Embedding.QueryInstruction, log)
	if err != nil {
		return err
	}
	defer cleanup()

	retriever, err := retrieval.New(vdb, embedder, cfg.Embedding.Model, log)
	if err != nil {
		return err
	}

	completer := openai.NewCompleter(&openai.CompleterConfig{
		APIKey:      cfg.Completion.APIKey,
		BaseURL:     cfg.Completion.BaseURL,
		Model:       cfg.Completion.Model,
		Temperature: cfg.Completion.Temperature,
		Timeout:     time.Duration(cfg.Completion.TimeoutSec) * time.Second,
		MaxRetries:  cfg.Completion.MaxRetries,
		Logger:      log,
	})

	report, err := analysis.New(retriever, completer, cfg.Retrieval.K, log).Run(ctx)
	if err != nil {
		return err
	}

	if err := reportstore.Save(outPath, report); err != nil {
		return err
	}
	log.Info("Analysis report persisted", zap.String("path", outPath))
	return nil
}

// RunReport loads the analysis report at inPath and writes the rendered HTML
// page to outPath. A chart spec that fails to render degrades to the
// no-visualization block; the report itself is still produced.
func RunReport(ctx context.Context, _ config.Config, inPath, outPath string) error {
	log := logger.FromContext(ctx).With(zap.String("stage", "report"))

	report, err := reportstore.Load(inPath)
	if err != nil {
		return err
	}

	var chartPNG []byte
	if report.Visualization.Chart != nil {
		chartPNG, err = render.RenderChart(report.Visualization.Chart)
		if err != nil {
			log.Warn("Chart rendering failed, emitting report without visualization", zap.Error(err))
			chartPNG = nil
		}
	}

	page, err := render.RenderHTML(report, chartPNG)
	if err != nil {
		return err
	}
	if err := artifact.WriteAtomic(outPath, page); err != nil {
		return fmt.Errorf("write report %s: %w", outPath, err)
	}
	log.Info("HTML report written",
		zap.String("path", outPath),
		zap.Bool("chart", chartPNG != nil),
	)
	return nil
}

// RunAll sequences the three stages for a single document. Only file paths
// cross stage boundaries; each stage re-reads its input from disk.
func RunAll(ctx context.Context, cfg config.Config, docPath, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", outDir, err)
	}

	dbPath := filepath.Join(outDir, DatabaseFile)
	reportPath := filepath.Join(outDir, ReportFile)
	htmlPath := filepath.Join(outDir, HTMLFile)

	if err := RunIndex(ctx, cfg, docPath, dbPath); err != nil {
		return fmt.Errorf("index stage: %w", err)
	}
	if err := RunAnalysis(ctx, cfg, dbPath, reportPath); err != nil {
		return fmt.Errorf("analyze stage: %w", err)
	}
	if err := RunReport(ctx, cfg, reportPath, htmlPath); err != nil {
		return fmt.Errorf("report stage: %w", err)
	}
	return nil
}

// embedder is the full vectorization surface the stages need.
type embedder interface {
	domain.Embedder
	domain.BatchEmbedder
}

// buildEmbedder assembles the embedding decorator chain:
// provider -> optional redis cache -> optional instruction prefix.
// The returned cleanup closes the cache connection when one was opened.
func buildEmbedder(cfg config.Config, instruction string, log *zap.Logger) (embedder, func(), error) {
	var chain embedder = openai.NewEmbedder(&openai.EmbedderConfig{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   cfg.Embedding.Provider,
		Logger:     log,
	})
	cleanup := func() {}

	if cfg.Cache.Enabled() {
		store, err := dbredis.NewStore(dbredis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect embedding cache: %w", err)
		}
		cleanup = store.Close
		chain = embcache.New(
			chain,
			store,
			cfg.Embedding.Model,
			time.Duration(cfg.Cache.TTLHours)*time.Hour,
			metrics.EmbeddingCacheTotal,
			log,
		)
		log.Info("Embedding cache enabled", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	if instruction != "" {
		chain = domain.NewInstructionEmbedder(chain, instruction)
	}
	return chain, cleanup, nil
}
