package encode

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tikgrab/tikgrab/internal/model"
)

// FFmpeg constants for the compatibility transcode
const (
	// Video codec settings
	VideoCodec  = "libx264"
	VideoPreset = "medium"
	VideoCRF    = "23"

	// Audio codec settings
	AudioCodec   = "aac"
	AudioBitrate = "128k"

	// Container flags
	FastStartFlag = "+faststart"

	// Output suffix
	TranscodedSuffix = "-h264"

	// Executable and I/O constants
	FFmpegCommand       = "ffmpeg"
	FFprobeCommand      = "ffprobe"
	FFprobeLogLevel     = "error"
	FFprobeShowEntries  = "format=duration"
	FFprobeOutputFormat = "csv=p=0"
	ProgressPipeTarget  = "pipe:2"
	ProgressTimePrefix  = "out_time_us="
	TaskIDPrefix        = "encode-"
	OutputExtensionMP4  = ".mp4"
)

// Service wraps the external ffmpeg/ffprobe binaries found on the process
// search path. yt-dlp uses the same binary for stream merging; this service
// only adds the optional post-download H.264/AAC transcode and the
// missing-encoder check performed before a batch starts.
type Service struct {
	tasks      map[string]*model.EncodeTask
	tasksMutex sync.RWMutex
	onUpdate   func(*model.EncodeTask) // callback for UI updates
}

// NewService creates a new encoder service
func NewService() *Service {
	return &Service{
		tasks: make(map[string]*model.EncodeTask),
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.EncodeTask)) {
	s.onUpdate = callback
}

// Locate checks that ffmpeg is reachable via the process search path.
func (s *Service) Locate() error {
	if _, err := exec.LookPath(FFmpegCommand); err != nil {
		return fmt.Errorf("%s not found on PATH: %w", FFmpegCommand, err)
	}
	return nil
}

// StartTranscode starts re-encoding a downloaded file to H.264/AAC MP4
func (s *Service) StartTranscode(inputPath string) (*model.EncodeTask, error) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	// Check if a transcode is already in progress for this file
	for _, task := range s.tasks {
		if task.InputPath == inputPath && task.Status.IsActive() {
			return nil, fmt.Errorf("transcode already in progress for file: %s", inputPath)
		}
	}

	// Check if input file exists
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("input file does not exist: %s", inputPath)
	}

	task := &model.EncodeTask{
		ID:         generateTaskID(),
		InputPath:  inputPath,
		OutputPath: generateOutputPath(inputPath),
		Status:     model.TaskStatusPending,
		StartedAt:  time.Now(),
	}

	s.tasks[task.ID] = task

	// Run in background
	go s.runTranscode(task)

	return task, nil
}

// StopTranscode stops a running transcode task
func (s *Service) StopTranscode(taskID string) error {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	task, exists := s.tasks[taskID]
	if !exists {
		return fmt.Errorf("encode task not found: %s", taskID)
	}

	if !task.Status.IsActive() {
		return fmt.Errorf("encode task is not active: %s", task.Status)
	}

	task.Status = model.TaskStatusStopping
	s.notifyUpdate(task)

	return nil
}

// GetTask returns an encode task by ID
func (s *Service) GetTask(taskID string) (*model.EncodeTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[taskID]
	return task, exists
}

// runTranscode performs the actual encoding
func (s *Service) runTranscode(task *model.EncodeTask) {
	s.tasksMutex.Lock()
	task.Status = model.TaskStatusStarting
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	// Duration of the input drives progress calculation
	duration, err := s.getVideoDuration(task.InputPath)
	if err != nil {
		log.Printf("Failed to get video duration for %s: %v", task.InputPath, err)
		s.setTaskError(task, err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Monitor for stop requests
	go func() {
		for {
			s.tasksMutex.RLock()
			status := task.Status
			s.tasksMutex.RUnlock()

			if status == model.TaskStatusStopping {
				cancel()
				return
			}
			if status.IsFinished() {
				return
			}
			time.Sleep(100 * time.Millisecond)
		}
	}()

	s.tasksMutex.Lock()
	task.Status = model.TaskStatusDownloading
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	args := s.BuildFFmpegArgs(task.InputPath, task.OutputPath)
	cmd := exec.CommandContext(ctx, FFmpegCommand, args...)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		s.setTaskError(task, fmt.Errorf("failed to create stderr pipe: %w", err))
		return
	}

	if err := cmd.Start(); err != nil {
		s.setTaskError(task, fmt.Errorf("failed to start ffmpeg: %w", err))
		return
	}

	go s.monitorProgress(stderr, task, duration)

	err = cmd.Wait()

	s.tasksMutex.Lock()
	if ctx.Err() == context.Canceled {
		task.Status = model.TaskStatusStopped
		os.Remove(task.OutputPath)
	} else if err != nil {
		task.Status = model.TaskStatusError
		task.LastError = err.Error()
		os.Remove(task.OutputPath)
	} else {
		task.Status = model.TaskStatusCompleted
		task.Progress = 1.0
		task.Percent = 100
	}
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

// BuildFFmpegArgs builds the ffmpeg command arguments
func (s *Service) BuildFFmpegArgs(inputPath, outputPath string) []string {
	return []string{
		"-y",            // Overwrite output file
		"-i", inputPath, // Input file
		"-c:v", VideoCodec, // Video codec
		"-preset", VideoPreset, // Encoding preset
		"-crf", VideoCRF, // Constant rate factor
		"-c:a", AudioCodec, // Audio codec
		"-b:a", AudioBitrate, // Audio bitrate
		"-movflags", FastStartFlag, // MP4 optimization
		"-progress", ProgressPipeTarget, // Progress to stderr
		"-nostats", // No stats output
		outputPath, // Output file
	}
}

// getVideoDuration gets the duration of a video file using ffprobe
func (s *Service) getVideoDuration(filePath string) (float64, error) {
	cmd := exec.Command(FFprobeCommand, "-v", FFprobeLogLevel, "-show_entries", FFprobeShowEntries, "-of", FFprobeOutputFormat, filePath)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("failed to run ffprobe: %w", err)
	}

	durationStr := strings.TrimSpace(string(output))
	duration, err := strconv.ParseFloat(durationStr, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}

	return duration, nil
}

// monitorProgress parses ffmpeg progress output
func (s *Service) monitorProgress(stderr io.ReadCloser, task *model.EncodeTask, totalDuration float64) {
	defer stderr.Close()
	scanner := bufio.NewScanner(stderr)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Progress line format: out_time_us=123456
		if !strings.HasPrefix(line, ProgressTimePrefix) {
			continue
		}
		timeMicroseconds, err := strconv.ParseInt(strings.TrimPrefix(line, ProgressTimePrefix), 10, 64)
		if err != nil {
			continue
		}

		timeSeconds := float64(timeMicroseconds) / 1000000.0
		if totalDuration <= 0 {
			continue
		}

		progress := timeSeconds / totalDuration
		if progress > 1.0 {
			progress = 1.0
		}

		s.tasksMutex.Lock()
		task.Progress = progress
		task.Percent = int(progress * 100)
		s.tasksMutex.Unlock()

		s.notifyUpdate(task)
	}
}

// setTaskError sets an error state for a task
func (s *Service) setTaskError(task *model.EncodeTask, err error) {
	s.tasksMutex.Lock()
	task.Status = model.TaskStatusError
	task.LastError = err.Error()
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.EncodeTask) {
	if s.onUpdate != nil {
		s.onUpdate(task)
	}
}

// generateOutputPath generates the output path for the transcoded file
func generateOutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	baseName := strings.TrimSuffix(inputPath, ext)
	return baseName + TranscodedSuffix + OutputExtensionMP4
}

// generateTaskID generates a unique task ID using UUID v7 for time ordering
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
