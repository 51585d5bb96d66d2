package weatherapi

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var dashboardTemplate = template.Must(template.ParseFS(templateFS, "templates/usage.html.tmpl"))

const (
	timestampLayout = "2006-01-02 15:04:05"
	previewLimit    = 100
)

type dashboardData struct {
	Date  string
	Count int
	Limit int
	Log   []logRow
	Cache []cacheRow
}

type logRow struct {
	Time, Endpoint, IP, Location string
}

type cacheRow struct {
	Feature, Key, Timestamp, Preview string
}

func (s *Server) handleUsageHTML(w http.ResponseWriter, _ *http.Request) {
	snap := s.usage.Snapshot()
	data := dashboardData{Date: snap.Date, Count: snap.Count, Limit: snap.Limit}

	// Newest first.
	for i := len(snap.Entries) - 1; i >= 0; i-- {
		e := snap.Entries[i]
		data.Log = append(data.Log, logRow{
			Time:     e.Time.Format(timestampLayout),
			Endpoint: e.Endpoint,
			IP:       e.IP,
			Location: e.Location,
		})
	}
	for _, e := range s.cache.Snapshot() {
		data.Cache = append(data.Cache, cacheRow{
			Feature:   e.Feature,
			Key:       e.Key,
			Timestamp: e.StoredAt.Format(timestampLayout),
			Preview:   preview(e.Value),
		})
	}

	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, data); err != nil {
		s.logger.Error("render usage dashboard failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// preview renders v as JSON cut to previewLimit runes.
func preview(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	r := []rune(string(raw))
	if len(r) <= previewLimit {
		return string(r)
	}
	return string(r[:previewLimit]) + "..."
}
