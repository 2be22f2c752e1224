package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/newslens/internal/common"
	"github.com/ternarybob/newslens/internal/services/pipeline"
)

// Service runs the daily update pipeline on a cron schedule.
type Service struct {
	cron     *cron.Cron
	pipeline *pipeline.Service
	config   *common.SchedulerConfig
	logger   arbor.ILogger
}

// NewService creates a scheduler around the pipeline.
func NewService(pipelineService *pipeline.Service, config *common.SchedulerConfig, logger arbor.ILogger) *Service {
	return &Service{
		cron:     cron.New(),
		pipeline: pipelineService,
		config:   config,
		logger:   logger,
	}
}

// Start registers the daily update job and starts the cron loop. A
// disabled scheduler is a no-op so the server can always call Start.
func (s *Service) Start() error {
	if !s.config.Enabled {
		s.logger.Info().Msg("Scheduler disabled")
		return nil
	}

	_, err := s.cron.AddFunc(s.config.Schedule, s.runDailyUpdate)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info().Str("schedule", s.config.Schedule).Msg("Scheduler started")
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Service) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(30 * time.Second):
		s.logger.Warn().Msg("Timed out waiting for scheduled job to finish")
	}
	s.logger.Info().Msg("Scheduler stopped")
}

func (s *Service) runDailyUpdate() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	result, err := s.pipeline.DailyUpdate(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Scheduled daily update failed")
		return
	}

	s.logger.Info().
		Str("run_id", result.RunID).
		Str("date", result.Date).
		Str("status", string(result.Status)).
		Msg("Scheduled daily update finished")
}
