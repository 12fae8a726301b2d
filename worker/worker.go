package worker

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"workmesh-backend/models"
	"workmesh-backend/utils/logger"

	"github.com/google/uuid"
	"github.com/robfig/cron"
)

// Worker runs the DynamoDB table bootstrap. In RunOnce mode (the
// default) it executes the setup a single time and stops; otherwise it
// retries on the cron schedule until the setup succeeds.
type Worker struct {
	config       *models.Config
	workerConfig *models.WorkerConfig
	logger       logger.Logger

	cronJob       *cron.Cron
	lockManager   *LockManager
	statusManager *StatusManager
	setup         *InfrastructureSetup
	ownerID       string

	mu        sync.Mutex
	isRunning bool
	stopOnce  sync.Once
	stopChan  chan struct{}
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewWorker(ctx context.Context, cfg *models.Config, log logger.Logger) (*Worker, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if log == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostname = "localhost"
	}
	ownerID := fmt.Sprintf("worker-%s-%s", hostname, uuid.New().String()[:8])

	workerConfig := &models.WorkerConfig{
		CronSchedule:   cronScheduleForEnvironment(cfg.AppEnv),
		LockTimeout:    30 * time.Minute,
		LockFilePath:   fmt.Sprintf("/tmp/workmesh-infrastructure-%s.lock", cfg.AppEnv),
		StatusFilePath: fmt.Sprintf("/tmp/workmesh-status-%s.json", cfg.AppEnv),
		RequiredTables: cfg.Tables,
		Environment:    cfg.AppEnv,
		RunOnce:        true,
	}

	if err := validateWorkerConfig(workerConfig); err != nil {
		return nil, fmt.Errorf("invalid worker configuration: %w", err)
	}

	setup, err := NewInfrastructureSetup(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create infrastructure setup: %w", err)
	}

	workerCtx, cancel := context.WithCancel(context.Background())

	return &Worker{
		config:        cfg,
		workerConfig:  workerConfig,
		logger:        log,
		cronJob:       cron.New(),
		lockManager:   NewLockManager(workerConfig.LockFilePath, workerConfig.LockTimeout, workerConfig.Environment),
		statusManager: NewStatusManager(workerConfig.StatusFilePath),
		setup:         setup,
		ownerID:       ownerID,
		stopChan:      make(chan struct{}),
		ctx:           workerCtx,
		cancel:        cancel,
	}, nil
}

// Start launches the bootstrap worker
func (w *Worker) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		return fmt.Errorf("worker is already running")
	}

	w.logger.Infof("Starting infrastructure worker %s (RunOnce=%v)", w.ownerID, w.workerConfig.RunOnce)

	if completed, err := w.statusManager.IsSetupCompleted(); err != nil {
		w.logger.Errorf("Failed to check setup status: %v", err)
	} else if completed {
		w.logger.Info("Infrastructure setup already completed, nothing to do")
		return nil
	}

	if w.workerConfig.RunOnce {
		w.isRunning = true
		go w.runOnceSetup()
		return nil
	}

	if err := w.cronJob.AddFunc(w.workerConfig.CronSchedule, w.executeSetupJob); err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}
	w.cronJob.Start()
	w.isRunning = true

	go w.executeSetupJob()
	return nil
}

// Stop stops the worker and cancels any in-flight setup
func (w *Worker) Stop() {
	w.stopOnce.Do(func() {
		w.mu.Lock()
		defer w.mu.Unlock()

		if w.cancel != nil {
			w.cancel()
		}
		if w.cronJob != nil {
			w.cronJob.Stop()
		}
		w.isRunning = false
		close(w.stopChan)

		w.logger.Info("Infrastructure worker stopped")
	})
}

// GetStatus returns the persisted outcome of the last bootstrap run
func (w *Worker) GetStatus() (*models.ExecutionResult, error) {
	return w.statusManager.LoadStatus()
}

func (w *Worker) runOnceSetup() {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Errorf("Setup panicked: %v", r)
		}
		w.Stop()
	}()

	w.executeSetupJob()
}

func (w *Worker) executeSetupJob() {
	select {
	case <-w.ctx.Done():
		w.logger.Info("Worker is stopping, skipping setup")
		return
	default:
	}

	ctx, cancel := context.WithTimeout(w.ctx, 15*time.Minute)
	defer cancel()

	lockInfo, err := w.lockManager.AcquireLock(w.ownerID)
	if err != nil {
		w.logger.Warnf("Failed to acquire bootstrap lock: %v", err)
		return
	}
	defer func() {
		if err := w.lockManager.ReleaseLock(lockInfo); err != nil {
			w.logger.Errorf("Failed to release bootstrap lock: %v", err)
		}
	}()

	result := &models.ExecutionResult{
		StartTime:   time.Now(),
		Status:      models.StatusRunning,
		Environment: w.workerConfig.Environment,
	}
	if err := w.statusManager.SaveStatus(result); err != nil {
		w.logger.Errorf("Failed to save initial status: %v", err)
	}

	tables, err := w.setup.EnsureTables(ctx)
	result.Tables = tables
	if err != nil {
		w.logger.Errorf("Infrastructure setup failed: %v", err)
		if serr := w.statusManager.MarkFailed(result, err.Error()); serr != nil {
			w.logger.Errorf("Failed to persist failure status: %v", serr)
		}
		return
	}

	if err := w.statusManager.MarkCompleted(result); err != nil {
		w.logger.Errorf("Failed to persist completion status: %v", err)
	}

	w.logger.Info("Infrastructure setup completed, all tables are ready")

	if !w.workerConfig.RunOnce {
		w.Stop()
	}
}

func validateWorkerConfig(config *models.WorkerConfig) error {
	if config.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if config.LockTimeout <= 0 {
		return fmt.Errorf("lock timeout must be positive")
	}
	if len(config.RequiredTables) == 0 {
		return fmt.Errorf("at least one required table must be specified")
	}
	if config.LockFilePath == "" {
		return fmt.Errorf("lock file path is required")
	}
	if config.StatusFilePath == "" {
		return fmt.Errorf("status file path is required")
	}

	if config.CronSchedule != "" {
		parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
		if _, err := parser.Parse(config.CronSchedule); err != nil {
			return fmt.Errorf("invalid cron schedule '%s': %w", config.CronSchedule, err)
		}
	}

	return nil
}

// cronScheduleForEnvironment picks the retry cadence per environment
func cronScheduleForEnvironment(env string) string {
	switch env {
	case "development":
		return "*/30 * * * * *"
	case "production":
		return "0 */15 * * * *"
	default:
		return "0 */10 * * * *"
	}
}
