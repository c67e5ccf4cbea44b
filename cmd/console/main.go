package main

import (
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-playground/validator/v10"
	flag "github.com/spf13/pflag"

	"go-recruitment-console/config"
	"go-recruitment-console/internal/delivery/tui"
	"go-recruitment-console/internal/domain"
	"go-recruitment-console/internal/repository/rankingapi"
	"go-recruitment-console/internal/session"
	"go-recruitment-console/internal/usecase"
	"go-recruitment-console/pkg/logger"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Flags override the environment.
	apiURL := flag.String("api-url", cfg.APIBaseURL, "ranking service base URL")
	token := flag.String("token", cfg.APIToken, "bearer access token")
	jobPath := flag.String("job", "", "preselect a job description file")
	resumePaths := flag.StringSlice("resumes", nil, "preselect resume files (comma separated)")
	flag.Parse()

	// 2. Setup Logger (file sink; the terminal belongs to the TUI)
	logger.Init(cfg.LogFile)
	logger.Log.Info("Starting recruitment console", "api", *apiURL)

	// 3. Setup Session
	sess := session.New()
	if *token != "" {
		if err := sess.Init(*token); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid access token: %v\n", err)
			os.Exit(1)
		}
	}

	// 4. Setup API client and usecases
	client := rankingapi.NewClient(*apiURL, sess, time.Duration(cfg.RequestTimeoutSeconds)*time.Second)
	validate := validator.New()
	pipelineUC := usecase.NewPipelineUsecase(client, sess, validate)
	rosterUC := usecase.NewRosterUsecase(client, sess)

	// 5. Preselect files from flags
	if *jobPath != "" {
		if err := pipelineUC.SelectJobDocument(domain.FileDocument(*jobPath)); err != nil {
			logger.Log.Warn("job preselect failed", "error", err)
		}
	}
	if len(*resumePaths) > 0 {
		docs := make([]domain.Document, 0, len(*resumePaths))
		for _, p := range *resumePaths {
			docs = append(docs, domain.FileDocument(p))
		}
		if err := pipelineUC.SelectResumeDocuments(docs); err != nil {
			logger.Log.Warn("resume preselect failed", "error", err)
		}
	}

	// 6. Run the TUI
	program := tea.NewProgram(tui.NewModel(sess, pipelineUC, rosterUC), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		logger.Log.Error("console exited with error", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger.Log.Info("Console exiting")
}
