//go:build js && wasm

package browser

import (
	"syscall/js"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newObject() js.Value {
	return js.Global().Get("Object").New()
}

// stubWindow returns a window-like object whose open() records its arguments.
func stubWindow(t *testing.T) (js.Value, *[][]string) {
	t.Helper()
	calls := &[][]string{}
	open := js.FuncOf(func(_ js.Value, args []js.Value) any {
		call := make([]string, len(args))
		for i, a := range args {
			call[i] = a.String()
		}
		*calls = append(*calls, call)
		return js.Null()
	})
	t.Cleanup(open.Release)

	win := newObject()
	location := newObject()
	location.Set("href", "https://www.radiooperator.net/")
	win.Set("location", location)
	win.Set("open", open)
	return win, calls
}

func TestWindow_Navigate(t *testing.T) {
	win, calls := stubWindow(t)
	w := &Window{win: win}

	w.Navigate("audioanalyzer.html")

	assert.Equal(t, "audioanalyzer.html", win.Get("location").Get("href").String())
	assert.Empty(t, *calls)
}

func TestWindow_OpenDetachedUsesNoopener(t *testing.T) {
	win, calls := stubWindow(t)
	w := &Window{win: win}

	w.OpenDetached("https://www.radiooperator.net/cgi-bin/weather.cgi")

	require.Len(t, *calls, 1)
	assert.Equal(t, []string{"https://www.radiooperator.net/cgi-bin/weather.cgi", "_blank", "noopener"}, (*calls)[0])
	assert.Equal(t, "https://www.radiooperator.net/", win.Get("location").Get("href").String(), "current location is unchanged")
}

func TestDocument_ExternalToolURL(t *testing.T) {
	dataset := newObject()
	dataset.Set("externalTool", "https://example.net/tool")
	body := newObject()
	body.Set("dataset", dataset)
	doc := newObject()
	doc.Set("body", body)

	assert.Equal(t, "https://example.net/tool", (&Document{doc: doc}).ExternalToolURL())

	empty := newObject()
	empty.Set("body", js.Null())
	assert.Empty(t, (&Document{doc: empty}).ExternalToolURL())
}
