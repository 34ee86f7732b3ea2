package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-regform/internal/config"
	"github.com/goliatone/go-regform/pkg/formstate"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/openapi"
	"github.com/goliatone/go-regform/pkg/render"
)

const maxBodyBytes = 64 << 10

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	c, err := s.newController()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	c.Mount()
	s.writePage(w, r, http.StatusOK, c, render.RenderOptions{})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	c, err := s.newController()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	c.Mount()

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		mapping := render.MapErrors(nil, map[string][]string{
			"form": {fmt.Sprintf("could not read the submitted form: %v", err)},
		})
		s.writePage(w, r, http.StatusBadRequest, c, render.RenderOptions{FormErrors: mapping.Form})
		return
	}

	c.Restore(render.ParseRenderCount(r.PostForm.Get(render.RenderCountField)))
	values := make(map[model.FieldName]string, len(model.Fields()))
	for _, field := range model.Fields() {
		values[field] = r.PostForm.Get(string(field))
	}
	if err := c.SetValues(values); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	_, ok := c.Submit(s.handler)
	s.recorder.ObserveSubmit(s.policy.Name(), c.Errors())

	if !ok {
		s.writePage(w, r, http.StatusUnprocessableEntity, c, render.RenderOptions{})
		return
	}
	s.writePage(w, r, http.StatusOK, c, render.RenderOptions{Notice: acceptedNotice})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, render.MapErrors(nil, map[string][]string{"form": {err.Error()}}))
		return
	}
	values, err := config.ParseValues(body, "request body")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, render.MapErrors(nil, map[string][]string{"form": {err.Error()}}))
		return
	}

	c, err := s.newController()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	c.Mount()
	if err := c.SetValues(values); err != nil {
		writeJSON(w, http.StatusBadRequest, render.MapErrors(nil, map[string][]string{"form": {err.Error()}}))
		return
	}

	record, ok := c.Submit(s.handler)
	s.recorder.ObserveSubmit(s.policy.Name(), c.Errors())
	if !ok {
		writeJSON(w, http.StatusUnprocessableEntity, c.Errors())
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	doc, err := openapi.Export(r.Context(), s.policy)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if strings.EqualFold(r.URL.Query().Get("format"), "yaml") {
		out, err := doc.YAML()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(out)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(doc.JSON())
}

func (s *Server) writePage(w http.ResponseWriter, r *http.Request, status int, c *formstate.Controller, options render.RenderOptions) {
	renderer, err := s.registry.Get(s.renderer)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	snapshot := c.Snapshot()
	options.Title = valueOr(options.Title, s.cfg.Title)
	options.Subtitle = valueOr(options.Subtitle, s.cfg.Subtitle)
	options.Action = valueOr(options.Action, "/")
	options.Hidden = render.MergeHiddenFields(options.Hidden, render.RenderCount(snapshot.RenderCount))
	if options.Theme == nil {
		options.Theme = s.cfg.RendererTheme()
	}

	start := time.Now()
	out, err := renderer.Render(r.Context(), snapshot, options)
	if err != nil {
		s.logger.Error("render form", "renderer", s.renderer, "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	s.recorder.ObserveRender(renderer.Name(), time.Since(start))

	w.Header().Set("Content-Type", renderer.ContentType())
	w.WriteHeader(status)
	if _, err := w.Write(out); err != nil {
		s.logger.Warn("write response", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func valueOr(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}
