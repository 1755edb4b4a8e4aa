package encode

import (
	"github.com/tikgrab/tikgrab/internal/model"
)

// Encoder defines the interface for the ffmpeg wrapper service.
type Encoder interface {
	SetUpdateCallback(func(*model.EncodeTask))

	// Locate verifies that the external encoder binary can be found on the
	// process search path.
	Locate() error

	StartTranscode(inputPath string) (*model.EncodeTask, error)
	StopTranscode(taskID string) error
}
