package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/recipecard/pkg/check"
	"github.com/matzehuels/recipecard/pkg/overlap"
	"github.com/matzehuels/recipecard/pkg/recipe"
	"github.com/matzehuels/recipecard/pkg/render"
	"github.com/matzehuels/recipecard/pkg/render/preview"
	"github.com/matzehuels/recipecard/pkg/template"
)

type overlapsResponse struct {
	TemplateID string            `json:"templateId"`
	Overlaps   []overlap.Overlap `json:"overlaps"`
	Involved   []string          `json:"involved"`
}

func (s *Server) overlaps(w http.ResponseWriter, r *http.Request) {
	tmpl, err := s.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	found := overlap.Detect(tmpl)
	involved := overlap.Involved(found)
	resp := overlapsResponse{TemplateID: tmpl.ID, Overlaps: found, Involved: []string{}}
	for _, sec := range tmpl.Sections {
		if involved[sec.ID] {
			resp.Involved = append(resp.Involved, sec.ID)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

type checkRequest struct {
	Recipe *recipe.Recipe `json:"recipe,omitempty"`
	Size   string         `json:"size,omitempty"`
}

func (s *Server) check(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := decode(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	report, err := s.Runner.Run(r.Context(), check.Options{
		TemplateID: chi.URLParam(r, "id"),
		Recipe:     req.Recipe,
		Size:       req.Size,
	})
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) preview(w http.ResponseWriter, r *http.Request) {
	format, err := render.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	tmpl, err := s.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	opts := preview.Options{Detailed: r.URL.Query().Get("detailed") == "true"}
	if name := r.URL.Query().Get("size"); name != "" {
		ps, err := template.ParseSize(name)
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		opts.Size = &ps
	}

	art, err := s.Renderer.Render(r.Context(), tmpl, opts, format)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	if art.Cached {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.Write(art.Data)
}
