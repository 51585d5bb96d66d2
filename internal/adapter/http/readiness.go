package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// StaticReadiness reports ready once the wasm bundle is present in the static
// file system, since the homepage behaviors are inert without it.
type StaticReadiness struct {
	FS     http.FileSystem
	Bundle string
}

// CheckReadiness implements the readiness check behind /readyz.
func (r StaticReadiness) CheckReadiness(_ context.Context) error {
	if r.FS == nil {
		return errors.New("static file system not configured")
	}
	f, err := r.FS.Open(r.Bundle)
	if err != nil {
		return fmt.Errorf("client bundle %s unavailable: %w", r.Bundle, err)
	}
	return f.Close()
}
