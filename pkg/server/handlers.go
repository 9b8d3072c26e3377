package server

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/bintree/pkg/buildinfo"
	"github.com/matzehuels/bintree/pkg/errors"
	"github.com/matzehuels/bintree/pkg/observability"
	"github.com/matzehuels/bintree/pkg/pipeline"
	"github.com/matzehuels/bintree/pkg/values"
)

// RenderRequest is the body of POST /v1/render. Values may be JSON numbers,
// strings or booleans; numbers keep their literal text.
type RenderRequest struct {
	Values      []any  `json:"values"`
	Order       string `json:"order,omitempty"`
	Unique      bool   `json:"unique,omitempty"`
	Format      string `json:"format,omitempty"`
	CellWidth   int    `json:"cell_width,omitempty"`
	Link        string `json:"link,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	ShowNull    bool   `json:"show_null,omitempty"`
	Refresh     bool   `json:"refresh,omitempty"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// servedFormats are the formats the API returns inline.
var servedFormats = map[string]string{
	pipeline.FormatText: "text/plain; charset=utf-8",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatSVG:  "image/svg+xml",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeRender(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	format := req.Format
	if format == "" {
		format = pipeline.FormatText
	}
	contentType, ok := servedFormats[format]
	if !ok {
		if err := pipeline.ValidateFormat(format); err != nil {
			s.fail(w, r, err)
			return
		}
		s.fail(w, r, errors.New(errors.ErrCodeUnsupported, "format %q is not served by the API", format))
		return
	}

	vals, err := values.FromAny(req.Values)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	opts := pipeline.Options{
		Values:      vals,
		Order:       values.Order(req.Order),
		Unique:      req.Unique,
		MaxValues:   s.cfg.MaxValues,
		Formats:     []string{format},
		CellWidth:   req.CellWidth,
		Link:        req.Link,
		Placeholder: req.Placeholder,
		ShowNull:    req.ShowNull,
		Refresh:     req.Refresh,
		Logger:      s.logger,
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	data := res.Artifacts[format]
	if format == pipeline.FormatJSON {
		var doc pipeline.Document
		if err := json.Unmarshal(data, &doc); err != nil {
			s.fail(w, r, errors.Wrap(errors.ErrCodeInternal, err, "decode cached document"))
			return
		}
		doc.ID = res.ID
		if data, err = json.Marshal(doc); err != nil {
			s.fail(w, r, errors.Wrap(errors.ErrCodeInternal, err, "encode document"))
			return
		}
	}

	cacheStatus := "miss"
	if res.CacheInfo.RenderHit {
		cacheStatus = "hit"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Cache", cacheStatus)
	w.Header().Set("X-Render-ID", res.ID)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) decodeRender(w http.ResponseWriter, r *http.Request) (RenderRequest, error) {
	var req RenderRequest

	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(body); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return req, errors.New(errors.ErrCodeTooLarge, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return req, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}

	dec := json.NewDecoder(&buf)
	dec.UseNumber()
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return req, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return req, nil
}

// fail writes err as an error response. Errors without a code are internal
// and their details are logged, not returned.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" || code == errors.ErrCodeInternal {
		s.logger.Error("request failed", "id", RequestIDFromContext(r.Context()), "err", err)
		observability.HTTP().OnError(r.Context(), r.Method, r.Host, r.URL.Path, err)
	}
	writeError(w, err)
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	if code == "" || code == errors.ErrCodeInternal {
		code = errors.ErrCodeInternal
		msg = "internal error"
	}
	writeJSON(w, errors.HTTPStatus(code), ErrorResponse{Code: code, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func errNotFound(path string) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s", path)
}

func errMethod(method, path string) error {
	return errors.New(errors.ErrCodeMethodNotAllowed, "method %s not allowed on %s", method, path)
}
