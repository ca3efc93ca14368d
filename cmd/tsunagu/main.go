// Package main is the Tsunagu CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/tsunagu/internal/config"
	"github.com/hyperjump/tsunagu/internal/ingest"
	"github.com/hyperjump/tsunagu/internal/intake"
	"github.com/hyperjump/tsunagu/internal/keyword"
	"github.com/hyperjump/tsunagu/internal/match"
	"github.com/hyperjump/tsunagu/internal/models"
	"github.com/hyperjump/tsunagu/internal/resume"
	"github.com/hyperjump/tsunagu/internal/server"
	"github.com/hyperjump/tsunagu/internal/storage"
	"github.com/hyperjump/tsunagu/internal/watcher"
	"github.com/hyperjump/tsunagu/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/tsunagu/config.yaml"

// loadConfig loads config from path. When path is the default, a config.yaml
// in the current directory takes precedence so running from the project dir
// uses the project's config.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "parse":
		runParse()
	case "match":
		runMatch()
	case "import":
		runImport()
	case "version", "--version", "-v":
		fmt.Printf("tsunagu version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	var watchSvc *watcher.Watcher
	if len(cfg.Intake.Directories) > 0 {
		watchOpts := []watcher.Option{}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		in := components.Intake
		watchSvc = watcher.NewWatcher(
			cfg.Intake.Directories,
			cfg.Intake.Extensions,
			func(path string) {
				if _, err := in.IngestFile(context.Background(), path); err != nil {
					logger.Warn("intake file failed", zap.String("path", path), zap.Error(err))
				}
			},
			watchOpts...,
		)
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start intake watcher", zap.Error(err))
		}
	}

	srv := server.NewServer(
		components.Intake,
		components.Scorer,
		components.Ranker,
		components.Storage,
		components.RoleIndex,
		cfg,
		logger,
	)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	if watchSvc != nil {
		watchSvc.Stop()
	}
	components.Intake.Wait()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// runParse parses a resume file and prints the profile as JSON. It needs no
// config or storage; useful for inspecting what the heuristics produce.
func runParse() {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])
	if fs.NArg() < 1 {
		fmt.Println("Usage: tsunagu parse [flags] <file>")
		os.Exit(1)
	}
	path := fs.Arg(0)

	logger, err := utils.NewLogger(*debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Failed to read file: %v\n", err)
		os.Exit(1)
	}

	parser := resume.NewParser(resume.WithLogger(logger))
	profile, err := parser.Parse(context.Background(), content, filepath.Base(path))
	if err != nil {
		fmt.Printf("Failed to parse resume: %v\n", err)
		os.Exit(1)
	}
	printJSON(profile)
}

// runMatch parses a resume file and ranks stored roles against it.
func runMatch() {
	fs := flag.NewFlagSet("match", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	sortMode := fs.String("sort", "best_match", "sort order: best_match or newest")
	limit := fs.Int("limit", 10, "maximum results")
	all := fs.Bool("all", false, "include results under the minimum score")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])
	if fs.NArg() < 1 {
		fmt.Println("Usage: tsunagu match [flags] <resume-file>")
		os.Exit(1)
	}
	path := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug || *debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Failed to read file: %v\n", err)
		os.Exit(1)
	}
	profile, err := components.Parser.Parse(context.Background(), content, filepath.Base(path))
	if err != nil {
		fmt.Printf("Failed to parse resume: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	matchProfile := models.MatchProfileFrom(profile)
	var roles []*models.Role
	if len(matchProfile.Skills) > 0 {
		ids, err := components.RoleIndex.MatchingAny(ctx, matchProfile.Skills, 500)
		if err == nil && len(ids) > 0 {
			roles, err = components.Storage.GetRoles(ctx, ids)
			if err != nil {
				logger.Fatal("Failed to load roles", zap.Error(err))
			}
		}
	}
	if len(roles) == 0 {
		roles, err = components.Storage.ListRoles(ctx, 0, 500)
		if err != nil {
			logger.Fatal("Failed to list roles", zap.Error(err))
		}
	}

	ranked := components.Ranker.Rank(matchProfile, roles, models.ParseSortMode(*sortMode))
	if !*all {
		ranked = match.FilterByMinScore(ranked, cfg.Match.MinScore)
	}
	ranked = match.TopN(ranked, *limit)

	for i, rr := range ranked {
		fmt.Printf("%2d. [%.2f] %s", i+1, rr.Match.Score, rr.Role.Title)
		if rr.Role.Startup != "" {
			fmt.Printf(" @ %s", rr.Role.Startup)
		}
		fmt.Println()
		if rr.Match.WhyRecommended != "" {
			fmt.Printf("    %s\n", rr.Match.WhyRecommended)
		}
	}
	if len(ranked) == 0 {
		fmt.Println("No matching roles found.")
	}
}

// runImport loads roles from an xlsx catalog into storage and the index.
func runImport() {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])
	if fs.NArg() < 1 {
		fmt.Println("Usage: tsunagu import [flags] <roles.xlsx>")
		os.Exit(1)
	}
	path := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug || *debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	roles, err := ingest.ReadRoles(path)
	if err != nil {
		fmt.Printf("Failed to read roles: %v\n", err)
		os.Exit(1)
	}
	if len(roles) == 0 {
		fmt.Println("No roles found in file.")
		return
	}

	ctx := context.Background()
	if err := components.Storage.BatchCreateRoles(ctx, roles); err != nil {
		logger.Fatal("Failed to store roles", zap.Error(err))
	}
	for _, role := range roles {
		if err := components.RoleIndex.Index(ctx, role); err != nil {
			logger.Warn("failed to index role", zap.String("id", role.ID), zap.Error(err))
		}
	}
	fmt.Printf("Imported %d roles from %s\n", len(roles), path)
}

// Components holds the initialized application services.
type Components struct {
	Storage   storage.Storage
	RoleIndex keyword.RoleIndex
	Parser    *resume.Parser
	Intake    *intake.Service
	Scorer    *match.Scorer
	Ranker    *match.Ranker
}

// Close releases component resources.
func (c *Components) Close() {
	if c.Storage != nil {
		_ = c.Storage.Close()
	}
	if c.RoleIndex != nil {
		_ = c.RoleIndex.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	roleIndex, err := keyword.NewBleveIndex(cfg.Storage.RoleIndexPath)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize role index: %w", err)
	}

	parser := resume.NewParser(
		resume.WithLogger(logger),
		resume.WithLimits(
			cfg.Parser.MaxSkills,
			cfg.Parser.MaxEducationEntries,
			cfg.Parser.MaxExperienceEntries,
			cfg.Parser.HeaderLines,
		),
	)

	scorer := match.NewScorer(
		match.WithScorerLogger(logger),
		match.WithWeights(match.Weights{
			Skills:         cfg.Match.SkillsWeight,
			Experience:     cfg.Match.ExperienceWeight,
			Location:       cfg.Match.LocationWeight,
			WorkPreference: cfg.Match.WorkPreferenceWeight,
		}),
	)

	return &Components{
		Storage:   store,
		RoleIndex: roleIndex,
		Parser:    parser,
		Intake:    intake.NewService(store, parser, logger),
		Scorer:    scorer,
		Ranker:    match.NewRanker(scorer, logger),
	}, nil
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func printUsage() {
	fmt.Println(`tsunagu - resume parsing and role matching engine

Usage:
  tsunagu <command> [flags]

Commands:
  server     Start the HTTP API server
  parse      Parse a resume file and print the extracted profile
  match      Parse a resume file and rank stored roles against it
  import     Import roles from an xlsx catalog
  version    Print version
  help       Show this help

Run 'tsunagu <command> -h' for command flags.`)
}
