package rest

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type pageData struct {
	Result *classifyResponse
}

// Index handles GET / with the upload form.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.renderIndex(w, http.StatusOK, pageData{})
}

func (h *Handler) renderIndex(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := h.index.Execute(&buf, data); err != nil {
		h.log.Error("rest: failed to render page", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
