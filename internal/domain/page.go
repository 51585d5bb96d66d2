package domain

import "time"

// Element identifiers rendered by the homepage template.
const (
	NavigationID       = "navigation"
	BottomNavigationID = "bottom_navigation"
	ClockID            = "clock"
	ColorPickerID      = "colorPicker"
)

// WeatherAlertProURL is the default external tool link. Selecting it opens a
// new browsing context instead of navigating the current one.
const WeatherAlertProURL = "https://www.radiooperator.net/cgi-bin/weather.cgi"

// SelectControl is a selection control with an enumerated option list.
type SelectControl interface {
	// Value returns the value of the currently selected option.
	Value() string
	// SetSelectedIndex selects the option at index i.
	SetSelectedIndex(i int)
	// OnChange registers fn to run whenever the selection changes.
	OnChange(fn func())
}

// TextElement is an element whose text content can be replaced.
type TextElement interface {
	SetText(text string)
}

// Document looks up page elements by identifier.
type Document interface {
	// Select returns the selection control with the given id, if present.
	Select(id string) (SelectControl, bool)
	// Text returns the text-bearing element with the given id, if present.
	Text(id string) (TextElement, bool)
	// SetBackgroundColor sets the page background. An empty color restores the default.
	SetBackgroundColor(color string)
}

// Navigator moves between browsing contexts.
type Navigator interface {
	// Navigate replaces the current document with url.
	Navigate(url string)
	// OpenDetached opens url in a new browsing context that has no reference
	// back to the opener.
	OpenDetached(url string)
}

// Scheduler runs recurring callbacks.
type Scheduler interface {
	// Every calls fn once per interval until the scheduler is torn down.
	Every(interval time.Duration, fn func())
}
