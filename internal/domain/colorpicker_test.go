package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorPicker_SetsBackground(t *testing.T) {
	doc := newFakeDocument()
	picker := newFakeSelect("#FF0000", "#0000FF")
	doc.selects[ColorPickerID] = picker

	NewColorPicker(doc, discardLogger()).Attach(ColorPickerID)

	picker.choose("#0000FF")
	assert.Equal(t, "#0000FF", doc.background)
	assert.Equal(t, 2, picker.index, "color selection is persistent")

	// The "White" option carries an empty value.
	picker.choose("")
	assert.Empty(t, doc.background)
}

func TestColorPicker_MissingControlIsNoop(t *testing.T) {
	doc := newFakeDocument()
	assert.NotPanics(t, func() { NewColorPicker(doc, discardLogger()).Attach(ColorPickerID) })
	assert.Empty(t, doc.background)
}
