//go:build js && wasm

// Command sitewasm attaches the homepage behaviors in the browser. Build with
// GOOS=js GOARCH=wasm and serve the result as js/site.wasm.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/couchcryptid/radiooperator-site/internal/adapter/browser"
	"github.com/couchcryptid/radiooperator-site/internal/domain"
	"github.com/couchcryptid/radiooperator-site/internal/schedule"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))

	doc := browser.NewDocument()
	nav := domain.NewNavigationDispatcher(doc, browser.NewWindow(), doc.ExternalToolURL(), logger)
	nav.Attach(domain.NavigationID)
	nav.Attach(domain.BottomNavigationID)

	domain.NewColorPicker(doc, logger).Attach(domain.ColorPickerID)

	sched := schedule.New(context.Background(), nil, logger)
	domain.NewClockTicker(doc, sched, nil, logger).Start(domain.ClockID)

	// Keep the callbacks registered for the life of the page.
	select {}
}
