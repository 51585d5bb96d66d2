// Package site renders the RadioOperator.net homepage.
package site

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/couchcryptid/radiooperator-site/internal/domain"
)

// MenuItem is one navigation target.
type MenuItem struct {
	Label string `toml:"label"`
	URL   string `toml:"url"`
	// NewContext marks the external tool link, opened in a detached browsing context.
	NewContext bool `toml:"new_context"`
}

// Menu is the ordered option list shared by both navigation dropdowns.
type Menu struct {
	Placeholder string     `toml:"placeholder"`
	Items       []MenuItem `toml:"item"`
}

// DefaultMenu returns the built-in navigation targets.
func DefaultMenu() Menu {
	return Menu{
		Placeholder: "Website Navigation",
		Items: []MenuItem{
			{Label: "HomePage", URL: "https://www.radiooperator.net"},
			{Label: "Bulletin Board (Forum)", URL: "https://www.radiooperator.net/forums"},
			{Label: "Audio Signal Analyzer", URL: "audioanalyzer.html"},
			{Label: "RadioOperator.net AI Assistant", URL: "chatgpt.html"},
			{Label: "Binary Clock", URL: "binaryclock.html"},
			{Label: "Weather Alert Pro", URL: domain.WeatherAlertProURL, NewContext: true},
			{Label: "Amateur Radio Resources and Courses", URL: "amateur-radio-resources-courses.html"},
		},
	}
}

// LoadMenu reads a menu from a TOML file. An empty path returns DefaultMenu.
//
//	placeholder = "Website Navigation"
//
//	[[item]]
//	label = "HomePage"
//	url = "https://www.radiooperator.net"
func LoadMenu(path string) (Menu, error) {
	if path == "" {
		return DefaultMenu(), nil
	}

	var m Menu
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return Menu{}, fmt.Errorf("decode menu %s: %w", path, err)
	}
	if m.Placeholder == "" {
		m.Placeholder = DefaultMenu().Placeholder
	}
	if err := m.Validate(); err != nil {
		return Menu{}, fmt.Errorf("menu %s: %w", path, err)
	}
	return m, nil
}

// Validate checks that every item is usable and at most one item opens in a
// new browsing context.
func (m Menu) Validate() error {
	if len(m.Items) == 0 {
		return errors.New("menu has no items")
	}
	external := 0
	for i, item := range m.Items {
		if item.Label == "" {
			return fmt.Errorf("item %d: label is required", i)
		}
		if item.URL == "" {
			return fmt.Errorf("item %d (%s): url is required", i, item.Label)
		}
		if item.NewContext {
			external++
		}
	}
	if external > 1 {
		return fmt.Errorf("%d items marked new_context, at most one is allowed", external)
	}
	return nil
}

// Sentinel returns the URL opened in a detached browsing context, or
// domain.WeatherAlertProURL when no item is marked.
func (m Menu) Sentinel() string {
	for _, item := range m.Items {
		if item.NewContext {
			return item.URL
		}
	}
	return domain.WeatherAlertProURL
}
