package rest

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ewilliams-labs/enisai/internal/core/domain"
	"github.com/ewilliams-labs/enisai/internal/core/services"
)

// multipartMemory is how much of a multipart body is held in memory before spilling to disk.
const multipartMemory = 8 << 20

// uploadFields are the accepted form field names, in lookup order.
var uploadFields = []string{"file", "audio"}

type classifyResponse struct {
	ID               string                `json:"id"`
	Filename         string                `json:"filename"`
	SongType         domain.GenreLabel     `json:"song_type"`
	RecommendedSongs []string              `json:"recommended_songs"`
	Features         domain.FeatureSummary `json:"features"`
	Tags             domain.TrackTags      `json:"tags"`
}

func newClassifyResponse(a domain.Analysis) classifyResponse {
	return classifyResponse{
		ID:               a.ID,
		Filename:         a.Filename,
		SongType:         a.Classification.Label,
		RecommendedSongs: a.Classification.Songs,
		Features:         a.Features,
		Tags:             a.Tags,
	}
}

// Upload handles POST /upload. It renders the result page unless the client asks for JSON.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	a, ok := h.classify(w, r)
	if !ok {
		return
	}
	resp := newClassifyResponse(a)
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, resp)
		return
	}
	h.renderIndex(w, http.StatusOK, pageData{Result: &resp})
}

// Classify handles POST /api/classify and always answers with JSON.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	a, ok := h.classify(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newClassifyResponse(a))
}

// classify reads the uploaded file and runs it through the service.
// It writes the error response itself and reports whether the caller should continue.
func (h *Handler) classify(w http.ResponseWriter, r *http.Request) (domain.Analysis, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "File too large")
			return domain.Analysis{}, false
		}
		h.log.Debug("rest: unreadable multipart body", zap.Error(err))
		writeError(w, http.StatusBadRequest, "No file part")
		return domain.Analysis{}, false
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			h.log.Warn("rest: failed to clean multipart temp files", zap.Error(err))
		}
	}()

	form := r.MultipartForm
	var (
		present bool
		field   string
	)
	for _, name := range uploadFields {
		if len(form.File[name]) > 0 {
			field = name
			break
		}
		// A part sent without a filename is parsed as a plain value.
		if _, ok := form.Value[name]; ok {
			present = true
		}
	}
	if field == "" {
		if present {
			writeError(w, http.StatusBadRequest, "No selected file")
		} else {
			writeError(w, http.StatusBadRequest, "No file part")
		}
		return domain.Analysis{}, false
	}

	header := form.File[field][0]
	file, err := header.Open()
	if err != nil {
		h.log.Error("rest: failed to open uploaded file", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return domain.Analysis{}, false
	}
	defer file.Close()

	a, err := h.svc.ClassifyUpload(r.Context(), services.Upload{Filename: header.Filename, Body: file})
	if err != nil {
		h.writeServiceError(w, err)
		return domain.Analysis{}, false
	}
	return a, true
}

// writeServiceError maps core errors to HTTP status codes.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrEmptyFilename):
		writeError(w, http.StatusBadRequest, "No selected file")
	case errors.Is(err, services.ErrEmptyID):
		writeError(w, http.StatusBadRequest, "analysis id cannot be empty")
	case errors.Is(err, domain.ErrUnsupportedAudio):
		writeError(w, http.StatusUnsupportedMediaType, "unsupported audio format")
	case errors.Is(err, domain.ErrEmptyAudio), errors.Is(err, domain.ErrNonFiniteFeature):
		writeError(w, http.StatusUnprocessableEntity, "audio could not be analyzed")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "analysis not found")
	default:
		h.log.Error("rest: request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
