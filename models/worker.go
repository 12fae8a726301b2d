package models

import "time"

// SetupStatus is the table-bootstrap worker state
type SetupStatus string

const (
	StatusPending   SetupStatus = "pending"
	StatusRunning   SetupStatus = "running"
	StatusCompleted SetupStatus = "completed"
	StatusFailed    SetupStatus = "failed"
)

// WorkerConfig configures the table-bootstrap worker
type WorkerConfig struct {
	CronSchedule   string
	LockTimeout    time.Duration
	LockFilePath   string
	StatusFilePath string
	RequiredTables []string
	Environment    string
	RunOnce        bool
}

// LockInfo identifies the holder of the bootstrap file lock
type LockInfo struct {
	OwnerID     string    `json:"owner_id"`
	AcquiredAt  time.Time `json:"acquired_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	Environment string    `json:"environment"`
}

// TableStatus records the outcome of one table's setup
type TableStatus struct {
	Name    string `json:"name"`
	Created bool   `json:"created"`
	Existed bool   `json:"existed"`
	Error   string `json:"error,omitempty"`
}

// ExecutionResult is the persisted outcome of a bootstrap run
type ExecutionResult struct {
	StartTime   time.Time     `json:"start_time"`
	EndTime     time.Time     `json:"end_time"`
	Success     bool          `json:"success"`
	Status      SetupStatus   `json:"status"`
	Environment string        `json:"environment"`
	Tables      []TableStatus `json:"tables"`
	Message     string        `json:"message,omitempty"`
}
