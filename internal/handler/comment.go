package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/mengyangyangs/CodeAutoTranslate/internal/adapter"
	"github.com/mengyangyangs/CodeAutoTranslate/internal/config"
	"github.com/mengyangyangs/CodeAutoTranslate/internal/dispatch"
	"github.com/mengyangyangs/CodeAutoTranslate/internal/metrics"
)

const (
	fileField       = "file"
	targetLangField = "targetLang"

	// multipartOverhead covers part headers, boundaries and the targetLang field.
	multipartOverhead = 64 << 10
)

// BodyLimit is the largest request body accepted for an upload of at most
// maxUploadBytes.
func BodyLimit(maxUploadBytes int64) int64 {
	return maxUploadBytes + multipartOverhead
}

type commentResponse struct {
	CommentedCode string `json:"commentedCode"`
}

// Comment handles POST /api/comment: a multipart upload with a "file" part
// and an optional "targetLang" field.
func Comment(d *dispatch.Dispatcher, defaultLang string, maxUploadBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, BodyLimit(maxUploadBytes))
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				writeError(w, http.StatusRequestEntityTooLarge, "file too large")
				return
			}
			// Non-multipart bodies carry no file part either.
			writeError(w, http.StatusBadRequest, "file part is missing from the request")
			return
		}
		defer r.MultipartForm.RemoveAll()

		file, header, err := r.FormFile(fileField)
		if err != nil {
			// Parts with an empty filename are parsed as plain values.
			if _, ok := r.MultipartForm.Value[fileField]; ok {
				writeError(w, http.StatusBadRequest, "no file selected")
				return
			}
			writeError(w, http.StatusBadRequest, "file part is missing from the request")
			return
		}
		defer file.Close()

		if header.Filename == "" {
			writeError(w, http.StatusBadRequest, "no file selected")
			return
		}
		if header.Size > maxUploadBytes {
			writeError(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}

		data, err := io.ReadAll(file)
		if err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Str("file", header.Filename).Msg("read upload")
			writeError(w, http.StatusInternalServerError, "internal error while processing file: read upload failed")
			return
		}
		metrics.UploadBytes.Observe(float64(len(data)))

		if !utf8.Valid(data) {
			writeError(w, http.StatusBadRequest, "file is not valid UTF-8 text")
			return
		}

		lang := strings.TrimSpace(r.FormValue(targetLangField))
		if lang == "" {
			lang = defaultLang
		}

		commented, err := d.Annotate(r.Context(), dispatch.Request{
			Filename:   header.Filename,
			Code:       string(data),
			TargetLang: lang,
		})
		if err != nil {
			writeAnnotateError(w, r, d, err)
			return
		}

		writeJSON(w, http.StatusOK, commentResponse{CommentedCode: commented})
	}
}

// writeAnnotateError maps dispatcher failures onto status codes. Messages for
// unclassified failures keep the error text with credentials redacted.
func writeAnnotateError(w http.ResponseWriter, r *http.Request, d *dispatch.Dispatcher, err error) {
	logger := zerolog.Ctx(r.Context()).With().Str("provider", d.ProviderName()).Logger()

	var missing *config.MissingError
	var perr *adapter.Error
	switch {
	case errors.As(err, &missing):
		logger.Error().Err(err).Msg("provider not configured")
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("provider is not configured: %v", missing))
	case errors.Is(err, config.ErrUnsupportedProvider):
		logger.Error().Err(err).Msg("unsupported provider")
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("unsupported provider: %q", d.ProviderName()))
	case errors.As(err, &perr) && perr.Kind == adapter.KindTimeout:
		logger.Error().Err(err).Msg("provider timed out")
		writeError(w, http.StatusGatewayTimeout, "LLM API call timed out, please try again later")
	case errors.As(err, &perr) && perr.Kind == adapter.KindStatus:
		logger.Error().Int("status", perr.StatusCode).Msg("provider request failed")
		writeError(w, http.StatusBadGateway, fmt.Sprintf("API request failed: %d", perr.StatusCode))
	case errors.As(err, &perr) && perr.Kind == adapter.KindRejected:
		logger.Warn().Str("reason", perr.Reason).Msg("provider rejected prompt")
		writeError(w, http.StatusInternalServerError, "API refused to answer due to safety policy: "+perr.Reason)
	default:
		msg := d.Redact(err.Error())
		logger.Error().Str("error", msg).Msg("annotate failed")
		writeError(w, http.StatusInternalServerError, "internal error while processing file: "+msg)
	}
}
