package worker

import (
	"context"
	"fmt"
	"time"

	"workmesh-backend/models"
	"workmesh-backend/utils/logger"
)

// Service wraps the infrastructure worker for easy integration
type Service struct {
	worker *Worker
	logger logger.Logger
}

// NewService creates a new worker service
func NewService(ctx context.Context, cfg *models.Config, log logger.Logger) (*Service, error) {
	w, err := NewWorker(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create infrastructure worker: %w", err)
	}

	return &Service{
		worker: w,
		logger: log,
	}, nil
}

// StartInBackground starts the infrastructure worker without blocking
func (s *Service) StartInBackground() error {
	s.logger.Info("Starting infrastructure worker service in background")

	go func() {
		if err := s.worker.Start(); err != nil {
			s.logger.Errorf("Infrastructure worker failed to start: %v", err)
		}
	}()

	return nil
}

// Stop stops the infrastructure worker service
func (s *Service) Stop() {
	s.logger.Info("Stopping infrastructure worker service")
	s.worker.Stop()
}

// GetStatus returns the current infrastructure setup status
func (s *Service) GetStatus() (*models.ExecutionResult, error) {
	return s.worker.GetStatus()
}

// IsSetupCompleted checks if infrastructure setup is completed
func (s *Service) IsSetupCompleted() (bool, error) {
	status, err := s.GetStatus()
	if err != nil {
		return false, err
	}
	return status.Status == models.StatusCompleted && status.Success, nil
}

// WaitForCompletion polls until the setup finishes or the timeout hits
func (s *Service) WaitForCompletion(timeoutSeconds int) error {
	s.logger.Infof("Waiting for infrastructure setup completion (timeout: %ds)", timeoutSeconds)

	for i := 0; i < timeoutSeconds; i++ {
		if completed, err := s.IsSetupCompleted(); err == nil && completed {
			s.logger.Info("Infrastructure setup completed")
			return nil
		}

		select {
		case <-s.worker.stopChan:
			if completed, _ := s.IsSetupCompleted(); completed {
				return nil
			}
			return fmt.Errorf("worker stopped before completion")
		case <-time.After(1 * time.Second):
		}
	}

	return fmt.Errorf("timeout waiting for infrastructure setup completion")
}
