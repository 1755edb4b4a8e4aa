package model

import "testing"

func TestTaskStatus_IsActive(t *testing.T) {
	tests := []struct {
		status   TaskStatus
		expected bool
	}{
		{TaskStatusPending, false},
		{TaskStatusStarting, true},
		{TaskStatusDownloading, true},
		{TaskStatusStopping, true},
		{TaskStatusStopped, false},
		{TaskStatusCompleted, false},
		{TaskStatusError, false},
	}

	for _, test := range tests {
		result := test.status.IsActive()
		if result != test.expected {
			t.Errorf("TaskStatus(%s).IsActive() = %v, expected %v", test.status, result, test.expected)
		}
	}
}

func TestTaskStatus_IsFinished(t *testing.T) {
	tests := []struct {
		status   TaskStatus
		expected bool
	}{
		{TaskStatusPending, false},
		{TaskStatusStarting, false},
		{TaskStatusDownloading, false},
		{TaskStatusStopping, false},
		{TaskStatusStopped, true},
		{TaskStatusCompleted, true},
		{TaskStatusError, true},
	}

	for _, test := range tests {
		result := test.status.IsFinished()
		if result != test.expected {
			t.Errorf("TaskStatus(%s).IsFinished() = %v, expected %v", test.status, result, test.expected)
		}
	}
}

func TestBatchStatus_Transitions(t *testing.T) {
	tests := []struct {
		status   BatchStatus
		running  bool
		finished bool
	}{
		{BatchStatusIdle, false, false},
		{BatchStatusDownloading, true, false},
		{BatchStatusDone, false, true},
		{BatchStatusError, false, true},
		{BatchStatusStopped, false, true},
	}

	for _, test := range tests {
		if got := test.status.IsRunning(); got != test.running {
			t.Errorf("BatchStatus(%s).IsRunning() = %v, expected %v", test.status, got, test.running)
		}
		if got := test.status.IsFinished(); got != test.finished {
			t.Errorf("BatchStatus(%s).IsFinished() = %v, expected %v", test.status, got, test.finished)
		}
	}
}
