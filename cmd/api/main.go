package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"xref-api/internal/config"
	"xref-api/internal/corpus"
	"xref-api/internal/http"
	"xref-api/internal/label"
	"xref-api/internal/reftype"
	"xref-api/internal/service"
	"xref-api/internal/storage"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	documentStore := storage.NewDocumentRepo(db)

	// Build the reference type registry: configured expr rules first,
	// then the built-in equation rule, then the default tag.
	var rules []reftype.InferenceRule
	if cfg.InferenceRulesPath != "" {
		exprRules, err := reftype.LoadRules(cfg.InferenceRulesPath)
		if err != nil {
			log.Fatalf("Failed to load inference rules: %v", err)
		}
		rules, err = reftype.CompileRules(exprRules)
		if err != nil {
			log.Fatalf("Failed to compile inference rules: %v", err)
		}
		slog.Info("Inference rules loaded", "path", cfg.InferenceRulesPath, "rules", len(rules))
	}
	equationEnvs := cfg.EquationEnvironments
	if len(equationEnvs) == 0 {
		equationEnvs = reftype.DefaultEquationEnvironments()
	}
	rules = append(rules, reftype.EquationRule("eqref", equationEnvs))

	typeRegistry, err := reftype.NewRegistry(reftype.DefaultDescriptors(), cfg.DefaultRefType, rules)
	if err != nil {
		log.Fatalf("Failed to build reference type registry: %v", err)
	}
	slog.Info("Reference type registry ready", "types", len(typeRegistry.Tags()), "default", cfg.DefaultRefType)

	// Create the cross-reference service
	xrefService := service.NewXrefService(documentStore, label.NewRegistry(), typeRegistry)

	// Create router with dependencies
	deps := &http.Deps{
		XrefService:   xrefService,
		DocumentStore: documentStore,
		DB:            db,
	}
	router := http.NewRouter(deps)

	// Sync the corpus in the background after the router is ready
	if cfg.CorpusPath != "" {
		go func() {
			syncCtx := context.Background()
			slog.Info("Starting corpus sync", "path", cfg.CorpusPath)
			written, err := corpus.NewScanner(documentStore, cfg.CorpusPath).Sync(syncCtx)
			if err != nil {
				slog.Error("Corpus sync completed with errors", "written", written, "error", err)
			} else {
				slog.Info("Corpus sync completed", "written", written)
			}
		}()
	}

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
