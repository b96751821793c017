// Package site serves the embedded front-end and the root redirect.
package site

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"
)

// Paths served by the site.
const (
	StaticPrefix = "/static/"
	IndexPath    = StaticPrefix + "index.html"
)

// Error constants
var (
	ErrServe = errors.New("site serve failed")
)

// Register attaches the root redirect and static asset routes to mux.
//
//	GET /                   -> 307 to /static/index.html
//	GET /static/index.html  -> embedded page
//	GET /static/...         -> embedded assets
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	root := NewRootHandler()
	mux.HandleFunc("GET /{$}", root.HandleRoot)
	mux.HandleFunc("GET "+IndexPath, root.HandleIndex)
	mux.Handle("GET "+StaticPrefix, http.StripPrefix(StaticPrefix, http.FileServerFS(FS())))
}

// RootHandler handles root path requests.
type RootHandler struct {
	assets fs.FS
}

// NewRootHandler creates a new root handler.
func NewRootHandler() *RootHandler {
	return &RootHandler{assets: FS()}
}

// HandleRoot redirects to the front-end entry page.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, IndexPath, http.StatusTemporaryRedirect)
}

// HandleIndex serves index.html directly; http.FileServer would redirect it
// to the bare directory.
func (h *RootHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := fs.ReadFile(h.assets, "index.html")
	if err != nil {
		http.Error(w, ErrServe.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	http.ServeContent(w, r, "index.html", time.Time{}, bytes.NewReader(page))
}
