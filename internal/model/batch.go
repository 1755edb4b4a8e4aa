package model

import (
	"fmt"
	"time"
)

// Batch represents one Download click: the URLs extracted from the input
// box plus the output directory they are written to. A batch is ephemeral
// form state; nothing is persisted beyond the files yt-dlp writes.
type Batch struct {
	ID        string
	OutputDir string
	Tasks     []*DownloadTask
	Status    BatchStatus
	Completed int
	Failed    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBatch creates a batch in the idle state with one pending task per URL.
func NewBatch(id string, urls []string, outputDir string) *Batch {
	now := time.Now()
	tasks := make([]*DownloadTask, 0, len(urls))
	for i, u := range urls {
		tasks = append(tasks, &DownloadTask{
			ID:     batchTaskID(id, i),
			URL:    u,
			Status: TaskStatusPending,
			ETASec: -1,
		})
	}
	return &Batch{
		ID:        id,
		OutputDir: outputDir,
		Tasks:     tasks,
		Status:    BatchStatusIdle,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func batchTaskID(batchID string, index int) string {
	return fmt.Sprintf("%s-%d", batchID, index+1)
}

// UpdateStatus updates the batch status
func (b *Batch) UpdateStatus(status BatchStatus) {
	b.Status = status
	b.UpdatedAt = time.Now()
}

// Finish moves the batch to its terminal state based on task outcomes:
// stopped when requested by the user, error when any task failed, done
// otherwise.
func (b *Batch) Finish(stopped bool) {
	switch {
	case stopped:
		b.UpdateStatus(BatchStatusStopped)
	case b.Failed > 0:
		b.UpdateStatus(BatchStatusError)
	default:
		b.UpdateStatus(BatchStatusDone)
	}
}

// Progress returns overall batch progress as a percentage of finished tasks.
func (b *Batch) Progress() float64 {
	if len(b.Tasks) == 0 {
		return 0
	}
	finished := 0
	for _, t := range b.Tasks {
		if t.Status.IsFinished() {
			finished++
		}
	}
	return ClampPercent(float64(finished) / float64(len(b.Tasks)) * 100)
}
