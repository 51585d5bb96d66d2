package domain

import (
	"log/slog"
)

// NavigationDispatcher binds redirect-on-select behavior to navigation controls.
type NavigationDispatcher struct {
	doc      Document
	nav      Navigator
	sentinel string
	logger   *slog.Logger
}

// NewNavigationDispatcher creates a dispatcher. Selections equal to sentinel
// open in a detached browsing context; pass an empty sentinel to use
// WeatherAlertProURL.
func NewNavigationDispatcher(doc Document, nav Navigator, sentinel string, logger *slog.Logger) *NavigationDispatcher {
	if sentinel == "" {
		sentinel = WeatherAlertProURL
	}
	return &NavigationDispatcher{
		doc:      doc,
		nav:      nav,
		sentinel: sentinel,
		logger:   logger,
	}
}

// Attach registers the change handler on the control with the given id.
// A missing control is ignored.
func (d *NavigationDispatcher) Attach(controlID string) {
	control, ok := d.doc.Select(controlID)
	if !ok {
		d.logger.Debug("navigation control not found", "id", controlID)
		return
	}
	control.OnChange(func() { d.dispatch(controlID, control) })
}

func (d *NavigationDispatcher) dispatch(controlID string, control SelectControl) {
	target := control.Value()
	if target == "" {
		return
	}

	if target == d.sentinel {
		d.logger.Debug("opening detached context", "id", controlID, "url", target)
		d.nav.OpenDetached(target)
	} else {
		d.logger.Debug("navigating", "id", controlID, "url", target)
		d.nav.Navigate(target)
	}

	control.SetSelectedIndex(0)
}
