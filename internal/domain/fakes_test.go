package domain

import (
	"io"
	"log/slog"
	"sync"
	"time"
)

// --- fake page ---

type fakeSelect struct {
	options  []string
	index    int
	handlers []func()
}

func newFakeSelect(options ...string) *fakeSelect {
	return &fakeSelect{options: append([]string{""}, options...)}
}

func (s *fakeSelect) Value() string { return s.options[s.index] }
func (s *fakeSelect) SetSelectedIndex(i int) { s.index = i }
func (s *fakeSelect) OnChange(fn func()) { s.handlers = append(s.handlers, fn) }

func (s *fakeSelect) choose(value string) {
	for i, opt := range s.options {
		if opt == value {
			s.index = i
			break
		}
	}
	for _, fn := range s.handlers {
		fn()
	}
}

type fakeText struct {
	mu     sync.Mutex
	text   string
	writes int
}

func (e *fakeText) SetText(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.text = text
	e.writes++
}

func (e *fakeText) snapshot() (string, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.text, e.writes
}

type fakeDocument struct {
	selects    map[string]*fakeSelect
	texts      map[string]*fakeText
	background string
}

func newFakeDocument() *fakeDocument {
	return &fakeDocument{
		selects: make(map[string]*fakeSelect),
		texts:   make(map[string]*fakeText),
	}
}

func (d *fakeDocument) Select(id string) (SelectControl, bool) {
	s, ok := d.selects[id]
	if !ok {
		return nil, false
	}
	return s, true
}

func (d *fakeDocument) Text(id string) (TextElement, bool) {
	e, ok := d.texts[id]
	if !ok {
		return nil, false
	}
	return e, true
}

func (d *fakeDocument) SetBackgroundColor(color string) { d.background = color }

type fakeNavigator struct {
	location string
	opened   []string
}

func (n *fakeNavigator) Navigate(url string)     { n.location = url }
func (n *fakeNavigator) OpenDetached(url string) { n.opened = append(n.opened, url) }

type fakeScheduler struct {
	interval time.Duration
	fns      []func()
}

func (s *fakeScheduler) Every(interval time.Duration, fn func()) {
	s.interval = interval
	s.fns = append(s.fns, fn)
}

func (s *fakeScheduler) tick() {
	for _, fn := range s.fns {
		fn()
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
