package server

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/corescene/pkg/document"
	apperr "github.com/matzehuels/corescene/pkg/errors"
	"github.com/matzehuels/corescene/pkg/pipeline"
	"github.com/matzehuels/corescene/pkg/render"
	"github.com/matzehuels/corescene/pkg/store"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	rec, err := s.readRecord(w, r, "")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.Put(r.Context(), rec); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Location", "/documents/"+rec.ID)
	rec.Data = nil
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleReplace(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := apperr.ValidateDocumentID(id); err != nil {
		writeError(w, err)
		return
	}
	rec, err := s.readRecord(w, r, id)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.Put(r.Context(), rec); err != nil {
		writeError(w, err)
		return
	}
	rec.Data = nil
	writeJSON(w, http.StatusOK, rec)
}

// readRecord decodes and validates a document upload. The format comes
// from the format query parameter or else the Content-Type.
func (s *Server) readRecord(w http.ResponseWriter, r *http.Request, id string) (*store.Record, error) {
	f, err := requestFormat(r)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperr.New(apperr.ErrCodeInvalidInput, "document larger than %d bytes", tooLarge.Limit)
		}
		return nil, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "read body")
	}
	doc, err := document.Parse(data, f)
	if err != nil {
		return nil, err
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		name = doc.Title
	}
	return &store.Record{ID: id, Name: name, Format: f, Data: data}, nil
}

var contentTypeFormats = map[string]document.Format{
	"application/toml":   document.FormatTOML,
	"application/yaml":   document.FormatYAML,
	"application/x-yaml": document.FormatYAML,
	"text/yaml":          document.FormatYAML,
	"application/json":   document.FormatJSON,
}

func requestFormat(r *http.Request) (document.Format, error) {
	if q := r.URL.Query().Get("format"); q != "" {
		return document.ParseFormat(q)
	}
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err == nil {
		if f, ok := contentTypeFormats[mt]; ok {
			return f, nil
		}
	}
	return "", apperr.New(apperr.ErrCodeInvalidFormat, "cannot tell the document format: pass ?format= or a toml, yaml or json Content-Type")
}

func formatContentType(f document.Format) string {
	switch f {
	case document.FormatTOML:
		return "application/toml"
	case document.FormatYAML:
		return "application/yaml"
	case document.FormatJSON:
		return "application/json"
	}
	return "application/octet-stream"
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", formatContentType(rec.Format))
	w.Header().Set("Last-Modified", rec.Updated.UTC().Format(http.TimeFormat))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(rec.Data)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pageCountResponse is the body of GET /documents/{id}/pages.
type pageCountResponse struct {
	ID    string `json:"id"`
	Pages int    `json:"pages"`
}

func (s *Server) handlePageCount(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		writeError(w, err)
		return
	}
	n, err := s.runner.PageCount(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pageCountResponse{ID: chi.URLParam(r, "id"), Pages: n})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	f, err := render.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		writeError(w, err)
		return
	}
	if f.MultiPage() {
		writeError(w, apperr.New(apperr.ErrCodeUnsupported, "%s is exported whole: use /documents/{id}/export.%s", f, f))
		return
	}
	page, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil {
		writeError(w, apperr.Wrap(apperr.ErrCodeInvalidPage, err, "bad page number"))
		return
	}
	opts, err := s.options(r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts.Formats = []render.Format{f}
	opts.Pages = []int{page}
	s.serveArtifact(w, r, opts)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts.Formats = []render.Format{render.FormatPDF}
	s.serveArtifact(w, r, opts)
}

func (s *Server) serveArtifact(w http.ResponseWriter, r *http.Request, opts pipeline.Options) {
	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	if len(res.Artifacts) != 1 {
		writeError(w, apperr.New(apperr.ErrCodeInternal, "expected one artifact, got %d", len(res.Artifacts)))
		return
	}
	a := res.Artifacts[0]
	w.Header().Set("Content-Type", a.Format.ContentType())
	w.Header().Set("X-Page-Count", strconv.Itoa(res.Pages))
	if res.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(a.Data)
}

// options loads the document named in the route and applies the server
// defaults and the query parameters.
func (s *Server) options(r *http.Request) (pipeline.Options, error) {
	id := chi.URLParam(r, "id")
	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := s.defaults
	opts.Source = id
	opts.Data = rec.Data
	opts.Format = rec.Format
	opts.Logger = s.logger

	q := r.URL.Query()
	if v := q.Get("paper"); v != "" {
		opts.Paper = v
	}
	if v := q.Get("per_page"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil || n <= 0 {
			return pipeline.Options{}, apperr.New(apperr.ErrCodeInvalidInput, "per_page must be a positive number, got %q", v)
		}
		opts.PerPage = n
	}
	if v := q.Get("zoom"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil || n <= 0 || n > 8 {
			return pipeline.Options{}, apperr.New(apperr.ErrCodeInvalidInput, "zoom must be in (0, 8], got %q", v)
		}
		opts.Zoom = n
	}
	opts.Section = strings.TrimSpace(q.Get("section"))
	opts.Refresh = q.Has("refresh")
	return opts, nil
}
