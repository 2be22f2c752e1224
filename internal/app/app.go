package app

import (
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/newslens/internal/common"
	"github.com/ternarybob/newslens/internal/handlers"
	"github.com/ternarybob/newslens/internal/interfaces"
	"github.com/ternarybob/newslens/internal/services/analyzer"
	"github.com/ternarybob/newslens/internal/services/llm"
	"github.com/ternarybob/newslens/internal/services/pipeline"
	"github.com/ternarybob/newslens/internal/services/scheduler"
	"github.com/ternarybob/newslens/internal/services/scraper"
	"github.com/ternarybob/newslens/internal/services/summary"
	"github.com/ternarybob/newslens/internal/storage"
)

// App wires together storage, services and handlers.
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	StorageManager interfaces.StorageManager
	Completion     interfaces.CompletionService
	Scraper        *scraper.Service
	Analyzer       *analyzer.Analyzer
	Pipeline       *pipeline.Service
	Summary        *summary.Service
	Scheduler      *scheduler.Service

	APIHandler      *handlers.APIHandler
	NewsHandler     *handlers.NewsHandler
	AnalysisHandler *handlers.AnalysisHandler
	RankingHandler  *handlers.RankingHandler
	SummaryHandler  *handlers.SummaryHandler
	UpdateHandler   *handlers.UpdateHandler
}

// New initializes the application: storage first, then the LLM
// provider, then services, then handlers.
func New(config *common.Config, logger arbor.ILogger) (*App, error) {
	storageManager, err := storage.NewStorageManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	completion, err := llm.NewCompletionService(config, logger)
	if err != nil {
		storageManager.Close()
		return nil, fmt.Errorf("failed to initialize LLM provider: %w", err)
	}

	scraperService, err := scraper.NewService(&config.Scraper, logger)
	if err != nil {
		completion.Close()
		storageManager.Close()
		return nil, fmt.Errorf("failed to initialize scraper: %w", err)
	}

	interval, err := time.ParseDuration(config.Analyzer.RequestInterval)
	if err != nil {
		completion.Close()
		storageManager.Close()
		return nil, fmt.Errorf("invalid analyzer request_interval %q: %w", config.Analyzer.RequestInterval, err)
	}

	analyzerService := analyzer.New(completion, logger)

	newsStorage := storageManager.NewsStorage()
	analysisStorage := storageManager.AnalysisStorage()

	pipelineService := pipeline.NewService(newsStorage, analysisStorage, scraperService, analyzerService, interval, logger)
	summaryService := summary.NewService(newsStorage, analysisStorage, logger)
	schedulerService := scheduler.NewService(pipelineService, &config.Scheduler, logger)

	application := &App{
		Config:         config,
		Logger:         logger,
		StorageManager: storageManager,
		Completion:     completion,
		Scraper:        scraperService,
		Analyzer:       analyzerService,
		Pipeline:       pipelineService,
		Summary:        summaryService,
		Scheduler:      schedulerService,

		APIHandler:      handlers.NewAPIHandler(logger),
		NewsHandler:     handlers.NewNewsHandler(newsStorage, pipelineService, logger),
		AnalysisHandler: handlers.NewAnalysisHandler(analysisStorage, pipelineService, logger),
		RankingHandler:  handlers.NewRankingHandler(analysisStorage, logger),
		SummaryHandler:  handlers.NewSummaryHandler(summaryService, logger),
		UpdateHandler:   handlers.NewUpdateHandler(pipelineService, logger),
	}

	if err := schedulerService.Start(); err != nil {
		application.Close()
		return nil, fmt.Errorf("failed to start scheduler: %w", err)
	}

	logger.Info().
		Str("storage", config.Storage.Type).
		Str("llm_provider", config.LLM.DefaultProvider).
		Msg("Application initialized")

	return application, nil
}

// Close releases application resources in reverse init order.
func (a *App) Close() {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	if a.Completion != nil {
		if err := a.Completion.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close LLM provider")
		}
	}
	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close storage")
		}
	}
}
