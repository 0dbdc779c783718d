package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alexanderramin/pauta/internal/cli"
	"github.com/alexanderramin/pauta/internal/db"
	"github.com/alexanderramin/pauta/internal/holiday"
	"github.com/alexanderramin/pauta/internal/llm"
	"github.com/alexanderramin/pauta/internal/planner"
	"github.com/alexanderramin/pauta/internal/repository"
	"github.com/alexanderramin/pauta/internal/service"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// startupFlags are the root flags needed before the command tree runs.
type startupFlags struct {
	envFile string
	verbose bool
}

func parseStartupFlags(args []string) startupFlags {
	var f startupFlags
	fs := pflag.NewFlagSet("startup", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}
	fs.StringVar(&f.envFile, "env-file", ".env", "")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "")
	fs.BoolP("help", "h", false, "")
	_ = fs.Parse(args)
	return f
}

func run() error {
	flags := parseStartupFlags(os.Args[1:])

	// A missing file is fine; variables may come from the environment.
	_ = godotenv.Load(flags.envFile)

	llmCfg := llm.LoadConfig()

	handler := slog.DiscardHandler
	if flags.verbose || llmCfg.LogCalls {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	// Determine DB path: env var or default ~/.pauta/pauta.db
	dbPath := os.Getenv("PAUTA_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".pauta", "pauta.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	briefingRepo := repository.NewSQLiteBriefingRepo(database)
	analysisRepo := repository.NewSQLiteAnalysisRepo(database)
	planRepo := repository.NewSQLitePlanRepo(database)
	ideaRepo := repository.NewSQLiteIdeaRepo(database)
	chatRepo := repository.NewSQLiteChatRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	var observer llm.Observer = llm.NoopObserver{}
	if flags.verbose || llmCfg.LogCalls {
		observer = llm.NewSlogObserver(logger)
	}

	// Without a usable configuration the read-only commands still work;
	// generating commands report llmErr.
	llmClient, llmErr := llm.NewClient(llmCfg, observer)
	if llmErr != nil {
		llmClient = llm.NewOpenAIClient(llmCfg, observer)
	}

	calendar := holiday.Default()
	useCases := service.NewLogUseCaseObserver(logger)
	assistant := planner.NewAssistantService(llmClient)

	app := &cli.App{
		Briefings: service.NewBriefingService(briefingRepo, useCases),
		Strategy: service.NewStrategyService(briefingRepo, analysisRepo, planRepo, uow,
			planner.NewAnalysisService(llmClient), planner.NewPlanService(llmClient), assistant, calendar, useCases),
		Ideas: service.NewIdeaService(briefingRepo, ideaRepo, planner.NewIdeasService(llmClient), calendar,
			service.DefaultIdeaConcurrency, useCases),
		Chat:     service.NewChatService(briefingRepo, chatRepo, assistant, useCases),
		Export:   service.NewExportService(briefingRepo, analysisRepo, planRepo, ideaRepo),
		Calendar: calendar,
		LLMError: llmErr,
	}

	// Forms, spinners and the chat TUI need a terminal on stdin.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
