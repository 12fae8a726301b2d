package worker

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"workmesh-backend/models"
)

// StatusManager persists the bootstrap outcome to a status file so a
// restarted instance can skip setup that already completed.
type StatusManager struct {
	StatusFilePath string
}

func NewStatusManager(statusPath string) *StatusManager {
	return &StatusManager{StatusFilePath: statusPath}
}

func (sm *StatusManager) SaveStatus(result *models.ExecutionResult) error {
	if err := os.MkdirAll(filepath.Dir(sm.StatusFilePath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize status: %w", err)
	}

	tempFile := sm.StatusFilePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp status file: %w", err)
	}
	if err := os.Rename(tempFile, sm.StatusFilePath); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temp status file: %w", err)
	}
	return nil
}

func (sm *StatusManager) LoadStatus() (*models.ExecutionResult, error) {
	data, err := os.ReadFile(sm.StatusFilePath)
	if err != nil {
		return nil, err
	}

	var result models.ExecutionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse status file: %w", err)
	}
	return &result, nil
}

// IsSetupCompleted reports whether a previous run finished successfully
func (sm *StatusManager) IsSetupCompleted() (bool, error) {
	result, err := sm.LoadStatus()
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return result.Success && result.Status == models.StatusCompleted, nil
}

// MarkCompleted records a successful run
func (sm *StatusManager) MarkCompleted(result *models.ExecutionResult) error {
	result.EndTime = time.Now()
	result.Success = true
	result.Status = models.StatusCompleted
	return sm.SaveStatus(result)
}

// MarkFailed records a failed run with its message
func (sm *StatusManager) MarkFailed(result *models.ExecutionResult, message string) error {
	result.EndTime = time.Now()
	result.Success = false
	result.Status = models.StatusFailed
	result.Message = message
	return sm.SaveStatus(result)
}
