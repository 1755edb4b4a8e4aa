package download

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lrstanley/go-ytdlp"

	"github.com/tikgrab/tikgrab/internal/config"
	"github.com/tikgrab/tikgrab/internal/encode"
	"github.com/tikgrab/tikgrab/internal/model"
	"github.com/tikgrab/tikgrab/internal/platform"
)

// yt-dlp invocation constants. The format string prefers MP4 video plus
// M4A audio and falls back to whatever is available; merging into a single
// MP4 container is delegated to ffmpeg through yt-dlp.
const (
	FormatPreference = "bv*[ext=mp4]+ba[ext=m4a]/bv*+ba/b[ext=mp4]/b"
	MergeFormat      = "mp4"
	OutputTemplate   = "%(title).100s.%(ext)s"

	DownloadRetries = "10"
	FragmentRetries = "10"
	RetrySleep      = "2,4,8,15,30"

	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/124.0 Safari/537.36"

	ProgressInterval = 500 * time.Millisecond

	BatchIDPrefix = "batch-"

	// EventBufferSize sizes the worker-to-UI channel; large enough that the
	// worker never stalls on a busy render loop.
	EventBufferSize = 256
)

// runnerFunc performs the download of a single URL. It exists as a field so
// tests can substitute the yt-dlp invocation.
type runnerFunc func(ctx context.Context, url, outputDir string, onProgress func(percent float64, speed string, etaSec int)) (outputPath, title string, err error)

// Service handles download operations. All mutable state is guarded by mu;
// the UI only ever observes it through the event channel and read accessors.
type Service struct {
	mu            sync.RWMutex
	events        chan model.Event
	batch         *model.Batch
	cancel        context.CancelFunc
	stopRequested bool
	maxParallel   int
	cookieBrowser config.CookieBrowser
	transcodeH264 bool
	encoder       encode.Encoder
	transcodes    map[string]struct{} // active encode task IDs
	runner        runnerFunc
}

// NewService creates a new download service. The encoder is used for the
// missing-ffmpeg check before a batch starts and for the optional
// post-download transcode; it may be nil in tests.
func NewService(maxParallel int, encoder encode.Encoder) *Service {
	if maxParallel < 1 {
		maxParallel = 1
	}
	s := &Service{
		events:      make(chan model.Event, EventBufferSize),
		maxParallel: maxParallel,
		encoder:     encoder,
		transcodes:  make(map[string]struct{}),
	}
	s.runner = s.runYTDLP
	if encoder != nil {
		encoder.SetUpdateCallback(s.onEncodeUpdate)
	}
	return s
}

// Events returns the worker-to-UI event channel.
func (s *Service) Events() <-chan model.Event {
	return s.events
}

// Active reports whether a batch is currently running.
func (s *Service) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.batch != nil && s.batch.Status.IsRunning()
}

// CurrentBatch returns the most recently started batch.
func (s *Service) CurrentBatch() (*model.Batch, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.batch, s.batch != nil
}

// SetMaxParallel sets the maximum number of parallel item downloads.
func (s *Service) SetMaxParallel(max int) {
	if max < 1 {
		max = 1
	}
	s.mu.Lock()
	s.maxParallel = max
	s.mu.Unlock()
}

// SetCookieBrowser selects the browser cookie store passed to yt-dlp.
func (s *Service) SetCookieBrowser(browser config.CookieBrowser) {
	s.mu.Lock()
	s.cookieBrowser = browser
	s.mu.Unlock()
}

// SetTranscodeH264 toggles the post-download compatibility transcode.
func (s *Service) SetTranscodeH264(enabled bool) {
	s.mu.Lock()
	s.transcodeH264 = enabled
	s.mu.Unlock()
}

// StartBatch begins downloading the given URLs into outputDir.
func (s *Service) StartBatch(urls []string, outputDir string) (*model.Batch, error) {
	if len(urls) == 0 {
		return nil, fmt.Errorf("no URLs to download")
	}

	if err := platform.EnsureWritableDir(outputDir); err != nil {
		return nil, err
	}

	if s.encoder != nil {
		if err := s.encoder.Locate(); err != nil {
			return nil, fmt.Errorf("encoder check failed: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.batch != nil && s.batch.Status.IsRunning() {
		return nil, fmt.Errorf("a download is already running")
	}

	batch := model.NewBatch(generateBatchID(), urls, outputDir)
	batch.UpdateStatus(model.BatchStatusDownloading)

	ctx, cancel := context.WithCancel(context.Background())
	s.batch = batch
	s.cancel = cancel
	s.stopRequested = false

	go s.runBatch(ctx, batch)

	return batch, nil
}

// Stop cancels the running batch along with any transcode it has started.
func (s *Service) Stop() error {
	s.mu.Lock()

	if s.batch == nil || !s.batch.Status.IsRunning() {
		s.mu.Unlock()
		return fmt.Errorf("no download is running")
	}

	s.stopRequested = true
	s.cancel()

	transcodes := make([]string, 0, len(s.transcodes))
	for id := range s.transcodes {
		transcodes = append(transcodes, id)
	}
	s.mu.Unlock()

	for _, id := range transcodes {
		if err := s.encoder.StopTranscode(id); err != nil {
			log.Printf("Failed to stop transcode %s: %v", id, err)
		}
	}

	return nil
}

// runBatch is the worker goroutine started by one Download click. It drives
// every URL of the batch, at most maxParallel at a time, and emits events
// until the batch reaches a terminal state.
func (s *Service) runBatch(ctx context.Context, batch *model.Batch) {
	s.emit(model.LogEvent(fmt.Sprintf("Downloading %d item(s) to: %s", len(batch.Tasks), batch.OutputDir)))

	s.mu.RLock()
	parallel := s.maxParallel
	s.mu.RUnlock()

	sem := make(chan struct{}, parallel)
	var wg sync.WaitGroup

	total := len(batch.Tasks)
	for i, task := range batch.Tasks {
		if ctx.Err() != nil {
			break
		}

		sem <- struct{}{}
		wg.Add(1)
		go func(index int, task *model.DownloadTask) {
			defer wg.Done()
			defer func() { <-sem }()

			s.emit(model.LogEvent(fmt.Sprintf("[%d/%d] %s", index+1, total, task.URL)))
			s.runTask(ctx, batch, task)
		}(i, task)
	}

	wg.Wait()

	s.mu.Lock()
	for _, task := range batch.Tasks {
		if task.Status == model.TaskStatusPending {
			task.Status = model.TaskStatusStopped
		}
	}
	batch.Finish(s.stopRequested)
	status := batch.Status
	s.mu.Unlock()

	s.emit(model.LogEvent("All tasks complete."))
	s.emit(model.Event{Kind: model.EventBatchDone, Message: string(status)})
}

// runTask downloads a single URL and walks the task through its lifecycle.
// Errors are logged and recorded, never propagated: a failed item must not
// take down the batch or the process.
func (s *Service) runTask(ctx context.Context, batch *model.Batch, task *model.DownloadTask) {
	s.mu.Lock()
	task.Status = model.TaskStatusDownloading
	task.StartedAt = time.Now()
	s.mu.Unlock()

	s.emit(model.ProgressEvent(task.ID, 0))

	onProgress := func(percent float64, speed string, etaSec int) {
		s.mu.Lock()
		task.SetPercent(percent)
		task.Speed = speed
		task.ETASec = etaSec
		stats := task.GetStatsLine()
		s.mu.Unlock()

		ev := model.ProgressEvent(task.ID, percent)
		ev.Message = stats
		s.emit(ev)
	}

	outputPath, title, err := s.runner(ctx, task.URL, batch.OutputDir, onProgress)

	s.mu.Lock()
	if err != nil {
		if ctx.Err() == context.Canceled {
			task.Status = model.TaskStatusStopped
		} else {
			task.Status = model.TaskStatusError
			task.LastError = err.Error()
			batch.Failed++
		}
	} else {
		task.Status = model.TaskStatusCompleted
		task.SetPercent(100)
		task.OutputPath = outputPath
		task.Title = title
		batch.Completed++
	}
	task.FinishedAt = time.Now()
	status := task.Status
	transcode := s.transcodeH264
	displayTitle := task.GetDisplayTitle()
	overall := batch.Progress()
	s.mu.Unlock()

	switch status {
	case model.TaskStatusCompleted:
		s.emit(model.ProgressEvent(task.ID, 100))
		s.emit(model.LogEvent("Done."))
		if transcode && outputPath != "" {
			s.startTranscode(outputPath)
		}
	case model.TaskStatusStopped:
		s.emit(model.LogEvent("Stopped."))
	default:
		s.emit(model.LogEvent(fmt.Sprintf("ERROR: %v", err)))
	}

	s.emit(model.Event{
		Kind:    model.EventTaskDone,
		TaskID:  task.ID,
		Status:  status,
		Message: displayTitle,
		Percent: overall,
	})

	// The per-item bar resets once the item is finished
	s.emit(model.ProgressEvent(task.ID, 0))
}

// startTranscode hands a completed download to the encoder service and
// tracks the resulting task so Stop can cancel it and onEncodeUpdate can
// report its outcome.
func (s *Service) startTranscode(outputPath string) {
	if s.encoder == nil {
		return
	}

	s.emit(model.LogEvent(fmt.Sprintf("Re-encoding to H.264: %s", filepath.Base(outputPath))))
	task, err := s.encoder.StartTranscode(outputPath)
	if err != nil {
		log.Printf("Transcode failed to start for %s: %v", outputPath, err)
		s.emit(model.LogEvent(fmt.Sprintf("ERROR: %v", err)))
		return
	}

	s.mu.Lock()
	s.transcodes[task.ID] = struct{}{}
	s.mu.Unlock()
}

// onEncodeUpdate receives encode task updates and surfaces terminal
// outcomes in the log. Progress ticks are dropped; a transcode that fails
// mid-run must still reach the user, never just the task map.
func (s *Service) onEncodeUpdate(task *model.EncodeTask) {
	if !task.Status.IsFinished() {
		return
	}

	s.mu.Lock()
	if _, tracked := s.transcodes[task.ID]; !tracked {
		s.mu.Unlock()
		return
	}
	delete(s.transcodes, task.ID)
	s.mu.Unlock()

	switch task.Status {
	case model.TaskStatusCompleted:
		s.emit(model.LogEvent(fmt.Sprintf("Re-encoded: %s", filepath.Base(task.OutputPath))))
	case model.TaskStatusStopped:
		s.emit(model.LogEvent(fmt.Sprintf("Re-encode stopped: %s", filepath.Base(task.InputPath))))
	default:
		log.Printf("Transcode failed for %s: %s", task.InputPath, task.LastError)
		s.emit(model.LogEvent(fmt.Sprintf("ERROR: re-encode failed for %s: %s", filepath.Base(task.InputPath), task.LastError)))
	}
}

// runYTDLP is the default runner: it invokes the yt-dlp binary through
// go-ytdlp (MP4 preference, merge into MP4, restricted filenames, retries,
// desktop user agent).
func (s *Service) runYTDLP(ctx context.Context, url, outputDir string, onProgress func(percent float64, speed string, etaSec int)) (string, string, error) {
	s.mu.RLock()
	cookieBrowser := s.cookieBrowser
	s.mu.RUnlock()

	dl := ytdlp.New().
		ForceOverwrites().
		RestrictFilenames().
		WindowsFilenames().
		NoPlaylist().
		ForceIPv4().
		Format(FormatPreference).
		MergeOutputFormat(MergeFormat).
		Retries(DownloadRetries).
		FragmentRetries(FragmentRetries).
		RetrySleep(RetrySleep).
		UserAgent(DefaultUserAgent).
		Output(filepath.Join(outputDir, OutputTemplate))

	if cookieBrowser != "" && cookieBrowser != config.CookiesNone {
		dl = dl.CookiesFromBrowser(string(cookieBrowser))
	}

	var title string
	dl.ProgressFunc(ProgressInterval, func(update ytdlp.ProgressUpdate) {
		percent := 0.0
		if update.TotalBytes > 0 {
			percent = float64(update.DownloadedBytes) / float64(update.TotalBytes) * 100
		}

		speed := ""
		if !update.Started.IsZero() {
			elapsed := time.Since(update.Started)
			if elapsed.Seconds() > 0 {
				bytesPerSecond := float64(update.DownloadedBytes) / elapsed.Seconds()
				speed = fmt.Sprintf("%.1fMB/s", bytesPerSecond/1024/1024)
			}
		}

		etaSec := -1
		if eta := update.ETA(); eta > 0 {
			etaSec = int(eta.Seconds())
		}

		if update.Info != nil && update.Info.Title != nil && *update.Info.Title != "" {
			title = *update.Info.Title
		}

		onProgress(percent, speed, etaSec)
	})

	result, err := dl.Run(ctx, url)
	if err != nil {
		return "", title, err
	}

	outputPath := ""
	if result != nil {
		info, infoErr := result.GetExtractedInfo()
		if infoErr == nil && len(info) > 0 && info[0].Filename != nil {
			outputPath = *info[0].Filename
		}
	}

	return outputPath, title, nil
}

// emit pushes an event to the UI channel.
func (s *Service) emit(ev model.Event) {
	s.events <- ev
}

// generateBatchID generates a unique batch ID using UUID v7 for time ordering
func generateBatchID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(BatchIDPrefix+"%d", time.Now().UnixNano())
	}
	return BatchIDPrefix + id.String()
}
