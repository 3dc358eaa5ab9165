package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/mvckit/pkg/httpserver"
	"github.com/dmitrymomot/mvckit/pkg/i18n"
	"github.com/dmitrymomot/mvckit/pkg/logger"
	"github.com/dmitrymomot/mvckit/pkg/request"
	"github.com/dmitrymomot/mvckit/pkg/storage"
	"github.com/dmitrymomot/mvckit/pkg/upload"
	"github.com/dmitrymomot/mvckit/pkg/validator"
)

type routerDeps struct {
	log          *slog.Logger
	translator   *i18n.Translator
	materializer *upload.Materializer
	store        storage.Storage
	gatherer     prometheus.Gatherer
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.Recoverer,
		i18n.Middleware(d.translator, i18n.FromQuery("lang"), i18n.FromCookie("lang")),
		validator.Middleware,
		request.Middleware,
	)

	r.Get("/health", httpserver.HealthCheckHandler(d.log))
	r.Handle("/metrics", promhttp.HandlerFor(d.gatherer, promhttp.HandlerOpts{}))

	h := &uploadHandler{log: d.log, translator: d.translator, store: d.store}
	avatar := &uploadHandler{log: d.log, translator: d.translator, store: d.store,
		rules: func(req *request.Request) []validator.Rule {
			return []validator.Rule{
				upload.RequiredFile(req, "avatar"),
				upload.AllowedTypes(req, "avatar", "image/*"),
			}
		},
	}
	uploads := upload.Middleware(d.materializer)

	r.With(uploads).Post("/upload", h.ServeHTTP)
	r.With(uploads).Post("/documents", h.ServeHTTP)
	r.With(upload.WithLimits(upload.Limits{Size: 512 << 10, FileSize: 256 << 10}), uploads).Post("/avatar", avatar.ServeHTTP)

	return r
}

type fileResponse struct {
	Field       string `json:"field"`
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
	Key         string `json:"key,omitempty"`
	URL         string `json:"url,omitempty"`
}

type uploadResponse struct {
	Parameters map[string][]string `json:"parameters"`
	Files      []fileResponse      `json:"files"`
	Messages   []string            `json:"messages,omitempty"`
}

// uploadHandler echoes the materialized request. With persist=true every file
// is copied to storage before the request cleanup removes it.
type uploadHandler struct {
	log        *slog.Logger
	translator *i18n.Translator
	store      storage.Storage
	// rules run only when decoding produced no messages.
	rules func(req *request.Request) []validator.Rule
}

func (h *uploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := request.FromContext(ctx)
	if !ok {
		http.Error(w, "request scope is missing", http.StatusInternalServerError)
		return
	}
	msgs := validator.FromContext(ctx)
	lang := i18n.Locale(ctx)

	if msgs.IsEmpty() && h.rules != nil {
		msgs.Apply(h.rules(req)...)
	}

	resp := uploadResponse{Parameters: req.Parameters(), Files: []fileResponse{}}
	if !msgs.IsEmpty() {
		resp.Messages = h.translator.Messages(lang, msgs)
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}

	persist := req.Parameter("persist") == "true"
	for _, name := range req.AttributeNames() {
		file, ok := req.Attribute(name).(*upload.File)
		if !ok {
			continue
		}
		fr := fileResponse{
			Field:       file.FieldName,
			Filename:    file.Filename,
			Size:        file.Size,
			ContentType: file.ContentType(),
		}
		if persist {
			obj, err := h.store.Save(ctx, file, storage.NewKey("uploads", file.Filename))
			if err != nil {
				h.log.ErrorContext(ctx, "failed to persist upload", logger.Field(name), logger.Error(err))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			fr.Key, fr.URL = obj.Key, obj.URL
		}
		resp.Files = append(resp.Files, fr)
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
