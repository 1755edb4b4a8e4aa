package model

// EventKind discriminates messages sent from the download worker to the UI
// loop. The worker owns all mutable state; the UI only ever sees events.
type EventKind int

const (
	// EventLog carries a line for the log pane
	EventLog EventKind = iota

	// EventProgress carries a clamped 0..100 percentage for the current item
	EventProgress

	// EventTaskDone signals that a single URL finished (any terminal status)
	EventTaskDone

	// EventBatchDone signals that the whole batch finished
	EventBatchDone
)

// Event is the unit passed over the worker-to-UI channel. Percent carries
// the item percentage for EventProgress and the overall batch percentage
// for EventTaskDone; Status is set for EventTaskDone. Message carries the
// log line for EventLog, the speed/ETA stats line for EventProgress, the
// display title for EventTaskDone, and the final BatchStatus for
// EventBatchDone.
type Event struct {
	Kind    EventKind
	TaskID  string
	Percent float64
	Message string
	Status  TaskStatus
}

// LogEvent builds a log-line event.
func LogEvent(message string) Event {
	return Event{Kind: EventLog, Message: message}
}

// ProgressEvent builds a progress event with the percentage clamped to 0..100.
func ProgressEvent(taskID string, percent float64) Event {
	return Event{Kind: EventProgress, TaskID: taskID, Percent: ClampPercent(percent)}
}
