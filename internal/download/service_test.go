package download

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tikgrab/tikgrab/internal/config"
	"github.com/tikgrab/tikgrab/internal/model"
)

// collectEvents drains the service channel until an EventBatchDone arrives
// or the timeout fires.
func collectEvents(t *testing.T, svc *Service) []model.Event {
	t.Helper()

	var events []model.Event
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev := <-svc.Events():
			events = append(events, ev)
			if ev.Kind == model.EventBatchDone {
				return events
			}
		case <-timeout:
			t.Fatal("timed out waiting for batch to finish")
		}
	}
}

// nextEvent reads a single event from the service channel or fails the test.
func nextEvent(t *testing.T, svc *Service) model.Event {
	t.Helper()

	select {
	case ev := <-svc.Events():
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for an event")
		return model.Event{}
	}
}

// fakeEncoder stands in for the ffmpeg service in tests.
type fakeEncoder struct {
	mu       sync.Mutex
	callback func(*model.EncodeTask)
	started  []*model.EncodeTask
	stopped  []string
}

func (f *fakeEncoder) SetUpdateCallback(cb func(*model.EncodeTask)) { f.callback = cb }

func (f *fakeEncoder) Locate() error { return nil }

func (f *fakeEncoder) StartTranscode(inputPath string) (*model.EncodeTask, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	task := &model.EncodeTask{
		ID:         fmt.Sprintf("encode-%d", len(f.started)+1),
		InputPath:  inputPath,
		OutputPath: strings.TrimSuffix(inputPath, ".mp4") + "-h264.mp4",
		Status:     model.TaskStatusStarting,
	}
	f.started = append(f.started, task)
	return task, nil
}

func (f *fakeEncoder) StopTranscode(taskID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = append(f.stopped, taskID)
	return nil
}

func (f *fakeEncoder) startedTasks() []*model.EncodeTask {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*model.EncodeTask(nil), f.started...)
}

func (f *fakeEncoder) stoppedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.stopped...)
}

func TestStartBatch_NoURLs(t *testing.T) {
	svc := NewService(1, nil)

	_, err := svc.StartBatch(nil, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no URLs")
}

func TestStartBatch_UnwritableDir(t *testing.T) {
	svc := NewService(1, nil)

	_, err := svc.StartBatch([]string{"https://www.tiktok.com/@u/video/1"}, "")
	require.Error(t, err)
}

func TestStartBatch_OutputDirPassesThrough(t *testing.T) {
	svc := NewService(1, nil)
	dir := t.TempDir()

	var gotDir string
	var mu sync.Mutex
	svc.runner = func(ctx context.Context, url, outputDir string, onProgress func(float64, string, int)) (string, string, error) {
		mu.Lock()
		gotDir = outputDir
		mu.Unlock()
		return "", "", nil
	}

	batch, err := svc.StartBatch([]string{"https://www.tiktok.com/@u/video/1"}, dir)
	require.NoError(t, err)
	assert.Equal(t, dir, batch.OutputDir)

	collectEvents(t, svc)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, dir, gotDir, "output dir must reach the download call unchanged")
}

func TestStartBatch_RejectsConcurrentBatch(t *testing.T) {
	svc := NewService(1, nil)
	dir := t.TempDir()

	release := make(chan struct{})
	svc.runner = func(ctx context.Context, url, outputDir string, onProgress func(float64, string, int)) (string, string, error) {
		<-release
		return "", "", nil
	}

	_, err := svc.StartBatch([]string{"https://www.tiktok.com/@u/video/1"}, dir)
	require.NoError(t, err)
	assert.True(t, svc.Active())

	_, err = svc.StartBatch([]string{"https://www.tiktok.com/@u/video/2"}, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already running")

	close(release)
	collectEvents(t, svc)
	assert.False(t, svc.Active())
}

func TestRunBatch_FailureIsLoggedNotFatal(t *testing.T) {
	svc := NewService(1, nil)

	svc.runner = func(ctx context.Context, url, outputDir string, onProgress func(float64, string, int)) (string, string, error) {
		if strings.Contains(url, "bad") {
			return "", "", errors.New("extraction failed")
		}
		return "/out/clip.mp4", "clip", nil
	}

	batch, err := svc.StartBatch([]string{
		"https://www.tiktok.com/@u/video/bad",
		"https://www.tiktok.com/@u/video/ok",
	}, t.TempDir())
	require.NoError(t, err)

	events := collectEvents(t, svc)

	var sawError bool
	for _, ev := range events {
		if ev.Kind == model.EventLog && strings.Contains(ev.Message, "ERROR: extraction failed") {
			sawError = true
		}
	}
	assert.True(t, sawError, "failed item must surface as a log event")

	assert.Equal(t, model.BatchStatusError, batch.Status)
	assert.Equal(t, 1, batch.Failed)
	assert.Equal(t, 1, batch.Completed)

	okTask := batch.Tasks[1]
	assert.Equal(t, model.TaskStatusCompleted, okTask.Status)
	assert.Equal(t, "/out/clip.mp4", okTask.OutputPath)
	assert.Equal(t, "clip", okTask.Title)
}

func TestRunBatch_ProgressClampedAndReset(t *testing.T) {
	svc := NewService(1, nil)

	svc.runner = func(ctx context.Context, url, outputDir string, onProgress func(float64, string, int)) (string, string, error) {
		onProgress(-20, "", -1)
		onProgress(55, "1.0MB/s", 30)
		onProgress(250, "", -1)
		return "/out/clip.mp4", "clip", nil
	}

	_, err := svc.StartBatch([]string{"https://www.tiktok.com/@u/video/1"}, t.TempDir())
	require.NoError(t, err)

	events := collectEvents(t, svc)

	var percents []float64
	for _, ev := range events {
		if ev.Kind == model.EventProgress {
			assert.GreaterOrEqual(t, ev.Percent, 0.0)
			assert.LessOrEqual(t, ev.Percent, 100.0)
			percents = append(percents, ev.Percent)
		}
	}

	// initial 0, clamped -20 -> 0, 55, clamped 250 -> 100, done 100, reset 0
	assert.Equal(t, []float64{0, 0, 55, 100, 100, 0}, percents)
}

func TestRunBatch_CompletesAllTasks(t *testing.T) {
	svc := NewService(2, nil)

	urls := []string{
		"https://www.tiktok.com/@u/video/1",
		"https://www.tiktok.com/@u/video/2",
		"https://www.tiktok.com/@u/video/3",
	}

	svc.runner = func(ctx context.Context, url, outputDir string, onProgress func(float64, string, int)) (string, string, error) {
		onProgress(100, "", -1)
		return "", "", nil
	}

	batch, err := svc.StartBatch(urls, t.TempDir())
	require.NoError(t, err)

	events := collectEvents(t, svc)

	taskDone := 0
	for _, ev := range events {
		if ev.Kind == model.EventTaskDone {
			taskDone++
		}
	}
	assert.Equal(t, len(urls), taskDone)
	assert.Equal(t, model.BatchStatusDone, batch.Status)
	assert.Equal(t, len(urls), batch.Completed)

	last := events[len(events)-1]
	assert.Equal(t, model.EventBatchDone, last.Kind)
	assert.Equal(t, string(model.BatchStatusDone), last.Message)
}

func TestStop_CancelsRunningBatch(t *testing.T) {
	svc := NewService(1, nil)

	started := make(chan struct{})
	svc.runner = func(ctx context.Context, url, outputDir string, onProgress func(float64, string, int)) (string, string, error) {
		close(started)
		<-ctx.Done()
		return "", "", ctx.Err()
	}

	batch, err := svc.StartBatch([]string{"https://www.tiktok.com/@u/video/1"}, t.TempDir())
	require.NoError(t, err)

	<-started
	require.NoError(t, svc.Stop())

	collectEvents(t, svc)

	assert.Equal(t, model.BatchStatusStopped, batch.Status)
	assert.Equal(t, model.TaskStatusStopped, batch.Tasks[0].Status)
}

func TestStop_NoBatchRunning(t *testing.T) {
	svc := NewService(1, nil)
	assert.Error(t, svc.Stop())
}

func TestNewService_ClampsMaxParallel(t *testing.T) {
	svc := NewService(0, nil)
	assert.Equal(t, 1, svc.maxParallel)

	svc.runner = func(ctx context.Context, url, outputDir string, onProgress func(float64, string, int)) (string, string, error) {
		return "", "", nil
	}

	_, err := svc.StartBatch([]string{"https://www.tiktok.com/@u/video/1"}, t.TempDir())
	require.NoError(t, err)

	events := collectEvents(t, svc)
	assert.Equal(t, model.EventBatchDone, events[len(events)-1].Kind)
}

func TestRunTask_EmitsStatsAndOverallProgress(t *testing.T) {
	svc := NewService(1, nil)

	svc.runner = func(ctx context.Context, url, outputDir string, onProgress func(float64, string, int)) (string, string, error) {
		onProgress(40, "1.2MB/s", 90)
		return "/out/clip.mp4", "clip", nil
	}

	_, err := svc.StartBatch([]string{"https://www.tiktok.com/@u/video/1"}, t.TempDir())
	require.NoError(t, err)

	events := collectEvents(t, svc)

	var stats string
	var done *model.Event
	for i, ev := range events {
		if ev.Kind == model.EventProgress && ev.Message != "" {
			stats = ev.Message
		}
		if ev.Kind == model.EventTaskDone {
			done = &events[i]
		}
	}

	assert.Equal(t, "1.2MB/s · ETA 01:30", stats)
	require.NotNil(t, done)
	assert.Equal(t, "clip", done.Message)
	assert.Equal(t, 100.0, done.Percent)
}

func TestTranscodeOutcome_ReachesEventChannel(t *testing.T) {
	enc := &fakeEncoder{}
	svc := NewService(1, enc)
	svc.SetTranscodeH264(true)

	svc.runner = func(ctx context.Context, url, outputDir string, onProgress func(float64, string, int)) (string, string, error) {
		return "/out/" + url[len(url)-1:] + ".mp4", "", nil
	}

	_, err := svc.StartBatch([]string{
		"https://www.tiktok.com/@u/video/1",
		"https://www.tiktok.com/@u/video/2",
	}, t.TempDir())
	require.NoError(t, err)

	events := collectEvents(t, svc)

	announced := 0
	for _, ev := range events {
		if ev.Kind == model.EventLog && strings.HasPrefix(ev.Message, "Re-encoding to H.264:") {
			announced++
		}
	}
	assert.Equal(t, 2, announced)

	started := enc.startedTasks()
	require.Len(t, started, 2)

	first := *started[0]
	first.Status = model.TaskStatusCompleted
	enc.callback(&first)

	ev := nextEvent(t, svc)
	assert.Equal(t, model.EventLog, ev.Kind)
	assert.Equal(t, "Re-encoded: 1-h264.mp4", ev.Message)

	second := *started[1]
	second.Status = model.TaskStatusError
	second.LastError = "ffmpeg exited with code 1"
	enc.callback(&second)

	ev = nextEvent(t, svc)
	assert.Equal(t, model.EventLog, ev.Kind)
	assert.Contains(t, ev.Message, "ERROR: re-encode failed for 2.mp4")
	assert.Contains(t, ev.Message, "ffmpeg exited with code 1")

	// A terminal update for the same task is reported once only.
	enc.callback(&second)
	select {
	case extra := <-svc.Events():
		t.Fatalf("unexpected event after duplicate update: %+v", extra)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestStop_StopsActiveTranscodes(t *testing.T) {
	enc := &fakeEncoder{}
	svc := NewService(1, enc)
	svc.SetTranscodeH264(true)

	svc.runner = func(ctx context.Context, url, outputDir string, onProgress func(float64, string, int)) (string, string, error) {
		if strings.HasSuffix(url, "1") {
			return "/out/1.mp4", "", nil
		}
		<-ctx.Done()
		return "", "", ctx.Err()
	}

	_, err := svc.StartBatch([]string{
		"https://www.tiktok.com/@u/video/1",
		"https://www.tiktok.com/@u/video/2",
	}, t.TempDir())
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		svc.mu.RLock()
		defer svc.mu.RUnlock()
		return len(svc.transcodes) == 1
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, svc.Stop())
	collectEvents(t, svc)

	assert.Equal(t, []string{"encode-1"}, enc.stoppedIDs())
}

func TestSetters(t *testing.T) {
	svc := NewService(0, nil)

	svc.SetMaxParallel(0)
	assert.Equal(t, 1, svc.maxParallel)

	svc.SetMaxParallel(4)
	assert.Equal(t, 4, svc.maxParallel)

	svc.SetCookieBrowser(config.CookiesChrome)
	assert.Equal(t, config.CookiesChrome, svc.cookieBrowser)

	svc.SetTranscodeH264(true)
	assert.True(t, svc.transcodeH264)
}
