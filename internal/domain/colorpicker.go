package domain

import "log/slog"

// ColorPicker applies the selected color to the page background.
type ColorPicker struct {
	doc    Document
	logger *slog.Logger
}

// NewColorPicker creates a ColorPicker for doc.
func NewColorPicker(doc Document, logger *slog.Logger) *ColorPicker {
	return &ColorPicker{doc: doc, logger: logger}
}

// Attach registers the change handler on the control with the given id.
// Unlike navigation controls, the selection is kept after a change.
func (p *ColorPicker) Attach(controlID string) {
	control, ok := p.doc.Select(controlID)
	if !ok {
		p.logger.Debug("color picker not found", "id", controlID)
		return
	}
	control.OnChange(func() {
		p.doc.SetBackgroundColor(control.Value())
	})
}
