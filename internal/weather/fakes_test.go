package weather

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
)

type fakeZip struct {
	place   Place
	ok      bool
	err     error
	country string
	zip     string
	calls   int
}

func (f *fakeZip) LookupZip(_ context.Context, country, zip string) (Place, bool, error) {
	f.calls++
	f.country, f.zip = country, zip
	return f.place, f.ok, f.err
}

type fakeCity struct {
	place Place
	ok    bool
	err   error
	query string
	calls int
}

func (f *fakeCity) LookupCity(_ context.Context, query string) (Place, bool, error) {
	f.calls++
	f.query = query
	return f.place, f.ok, f.err
}

type fakeProvider struct {
	oneCall    OneCall
	oneCallErr error
	air        json.RawMessage
	airErr     error
	calls      int
	units      []string
}

func (f *fakeProvider) OneCall(_ context.Context, _, _ float64, units string) (OneCall, error) {
	f.calls++
	f.units = append(f.units, units)
	return f.oneCall, f.oneCallErr
}

func (f *fakeProvider) AirPollution(_ context.Context, _, _ float64) (json.RawMessage, error) {
	f.calls++
	return f.air, f.airErr
}

type mapCache struct {
	mu      sync.Mutex
	entries map[string]any
}

func newMapCache() *mapCache { return &mapCache{entries: make(map[string]any)} }

func (c *mapCache) Get(feature, key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[feature+"|"+key]
	return v, ok
}

func (c *mapCache) Put(feature, key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[feature+"|"+key] = value
}

type fakeQuota struct {
	limit int
	count int
}

func (q *fakeQuota) Allow(context.Context) (int, bool) {
	if q.count >= q.limit {
		return q.count, false
	}
	q.count++
	return q.count, true
}

func (q *fakeQuota) Limit() int { return q.limit }

type fakeUsage struct {
	endpoints []string
	ips       []string
}

func (u *fakeUsage) Record(_ context.Context, endpoint, ip string) {
	u.endpoints = append(u.endpoints, endpoint)
	u.ips = append(u.ips, ip)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
