// ChipPlace — Annealing Floorplacer
//
// A cross-platform desktop application for placing rectangular modules
// on a bounded die by simulated annealing, minimizing wirelength while
// keeping modules apart and on the die.
//
// Build:
//   go build -o chipplace ./cmd/chipplace
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o chipplace.exe ./cmd/chipplace
//   GOOS=darwin  GOARCH=amd64 go build -o chipplace-darwin ./cmd/chipplace
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/piwi3910/ChipPlace/internal/ui"
)

func main() {
	application := app.NewWithID("com.piwi3910.chipplace")
	application.Settings().SetTheme(ui.NewChipPlaceTheme())
	window := application.NewWindow("ChipPlace — Annealing Floorplacer")

	appUI := ui.NewApp(window)
	appUI.SetupMenus() // Setup the native menu bar
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1000, 700))
	window.CenterOnScreen()
	window.ShowAndRun()
}
