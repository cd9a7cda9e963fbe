package handler

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"movierec/internal/logging"
	"movierec/internal/models"
	"movierec/internal/recommend"
	"movierec/internal/service"
)

//go:embed templates/index.html
var templatesFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

type pageData struct {
	Query    string
	Result   *models.RecResult
	NotFound bool
}

// PageHandler serves the single search page.
type PageHandler struct {
	svc *service.RecommendService
}

func NewPageHandler(s *service.RecommendService) *PageHandler { return &PageHandler{svc: s} }

// @Summary Search page
// @Description HTML page with a title box. With movie set it lists similar movies or says the movie was not found.
// @Tags page
// @Produce html
// @Param movie query string false "movie title"
// @Success 200 {string} string "html"
// @Router / [get]
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	data := pageData{Query: r.URL.Query().Get("movie")}

	res, err := h.svc.Recommend(r.Context(), service.RecRequest{Query: data.Query, Surface: "page"})
	switch {
	case errors.Is(err, recommend.ErrEmptyQuery):
	case errors.Is(err, recommend.ErrNoMatch):
		data.NotFound = true
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	default:
		data.Result = res
	}

	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, data); err != nil {
		logging.Error().Err(err).Msg("[page] render failed")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
