package main

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/tikgrab/tikgrab/internal/config"
	"github.com/tikgrab/tikgrab/internal/download"
	"github.com/tikgrab/tikgrab/internal/encode"
	"github.com/tikgrab/tikgrab/internal/platform"
	"github.com/tikgrab/tikgrab/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.tikgrab.tikgrab"
	AppName = "TikGrab"

	WindowWidth  = 640
	WindowHeight = 540
)

func main() {
	fmt.Printf("%s v%s starting...\n", AppName, version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Point yt-dlp at a trusted CA bundle. Some systems ship without a
	// usable trust store and every HTTPS request fails otherwise.
	if bundle, err := platform.SetupCABundle(myApp.Storage().RootURI().Path()); err != nil {
		log.Printf("CA bundle setup failed: %v", err)
	} else {
		log.Printf("CA bundle ready: %s", bundle)
	}

	// Initialize services
	settings := config.NewSettings(myApp)
	outputDir := settings.GetOutputDirectory()
	if err := platform.CreateDirectoryIfNotExists(outputDir); err != nil {
		log.Printf("failed to ensure output dir: %v", err)
	}

	encodeSvc := encode.NewService()
	downloadSvc := download.NewService(settings.GetMaxParallelDownloads(), encodeSvc)

	// Create and setup UI
	ui.NewRootUI(myWindow, myApp, downloadSvc)

	// Show and run
	myWindow.ShowAndRun()
}
