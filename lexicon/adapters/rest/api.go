package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"yadro.com/lexicon/lexicon/adapters/export"
	"yadro.com/lexicon/lexicon/core"
)

type Lexicon interface {
	Load(ctx context.Context, name string, data []byte) (core.LoadResult, error)
	AddLink(ctx context.Context, lemma, partner string) (string, error)
	RemoveLink(ctx context.Context, lemma, partner string) error
	Clear(ctx context.Context) error
	Partners(ctx context.Context, lemma string) ([]string, bool)
	Lemmas(ctx context.Context, filter string) []core.LemmaInfo
	Stats(ctx context.Context) core.Stats
	Entries(ctx context.Context) ([]core.Entry, error)
}

type Authenticator interface {
	Login(user, password string) (string, error)
}

func writeJSON(log *slog.Logger, w http.ResponseWriter, status int, reply any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(reply); err != nil {
		log.Error("cannot encode reply", "error", err)
	}
}

// writeError maps core errors to HTTP statuses
func writeError(log *slog.Logger, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrUnsupportedFormat):
		http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
	case errors.Is(err, core.ErrContent),
		errors.Is(err, core.ErrValidation),
		errors.Is(err, core.ErrNormalization):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, core.ErrEmptyLexicon):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		http.Error(w, "request cancelled", http.StatusRequestTimeout)
	default:
		log.Error("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

type PingResponse struct {
	Status string `json:"status"`
}

func NewPingHandler(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(log, w, http.StatusOK, PingResponse{Status: "ok"})
	}
}

type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func NewLoginHandler(log *slog.Logger, auth Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := r.Body.Close(); err != nil {
				log.Error("cannot close request body", "error", err)
			}
		}()

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("cannot decode login request", "error", err)
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		token, err := auth.Login(req.Name, req.Password)
		if err != nil {
			log.Warn("cannot login", "user", req.Name, "error", err)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		w.Header().Set("Content-Type", "text/plain")
		if _, err := w.Write([]byte(token)); err != nil {
			log.Error("cannot write login response", "error", err)
		}
	}
}

type DocumentResponse struct {
	Document    string `json:"document"`
	Lemmas      int    `json:"lemmas"`
	Links       int    `json:"links"`
	TotalLemmas int    `json:"total_lemmas"`
	TotalLinks  int    `json:"total_links"`
}

// NewDocumentHandler reads the raw file from the body; ?name= carries the
// file name, its extension selects the decoder.
func NewDocumentHandler(log *slog.Logger, lexicon Lexicon, maxSize int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimSpace(r.URL.Query().Get("name"))
		if name == "" {
			http.Error(w, "missing document name", http.StatusBadRequest)
			return
		}

		if maxSize > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, maxSize)
		}
		data, err := io.ReadAll(r.Body)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				http.Error(w, "document too large", http.StatusRequestEntityTooLarge)
				return
			}
			log.Error("cannot read document", "error", err)
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		res, err := lexicon.Load(r.Context(), name, data)
		if err != nil {
			writeError(log, w, err)
			return
		}

		writeJSON(log, w, http.StatusOK, DocumentResponse{
			Document:    res.Document,
			Lemmas:      res.Added.Lemmas,
			Links:       res.Added.Links,
			TotalLemmas: res.Total.Lemmas,
			TotalLinks:  res.Total.Links,
		})
	}
}

type LemmaItem struct {
	Lemma    string `json:"lemma"`
	Partners int    `json:"partners"`
}

type LemmasResponse struct {
	Lemmas []LemmaItem `json:"lemmas"`
	Total  int         `json:"total"`
}

func NewLemmasHandler(log *slog.Logger, lexicon Lexicon) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		infos := lexicon.Lemmas(r.Context(), r.URL.Query().Get("filter"))

		reply := LemmasResponse{
			Lemmas: make([]LemmaItem, 0, len(infos)),
			Total:  len(infos),
		}
		for _, info := range infos {
			reply.Lemmas = append(reply.Lemmas, LemmaItem{Lemma: info.Lemma, Partners: info.Partners})
		}
		writeJSON(log, w, http.StatusOK, reply)
	}
}

type PartnersResponse struct {
	Lemma    string   `json:"lemma"`
	Partners []string `json:"partners"`
}

func NewPartnersHandler(log *slog.Logger, lexicon Lexicon) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lemma := strings.ToLower(strings.TrimSpace(r.PathValue("lemma")))

		partners, ok := lexicon.Partners(r.Context(), lemma)
		if !ok {
			http.Error(w, "lemma not found", http.StatusNotFound)
			return
		}
		writeJSON(log, w, http.StatusOK, PartnersResponse{Lemma: lemma, Partners: partners})
	}
}

type AddLinkRequest struct {
	Partner string `json:"partner"`
}

type AddLinkResponse struct {
	Lemma   string `json:"lemma"`
	Partner string `json:"partner"`
}

func NewAddLinkHandler(log *slog.Logger, lexicon Lexicon) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := r.Body.Close(); err != nil {
				log.Error("cannot close request body", "error", err)
			}
		}()

		var req AddLinkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		lemma := strings.ToLower(strings.TrimSpace(r.PathValue("lemma")))
		partner, err := lexicon.AddLink(r.Context(), lemma, req.Partner)
		if err != nil {
			writeError(log, w, err)
			return
		}
		writeJSON(log, w, http.StatusOK, AddLinkResponse{Lemma: lemma, Partner: partner})
	}
}

func NewRemoveLinkHandler(log *slog.Logger, lexicon Lexicon) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lemma := strings.ToLower(strings.TrimSpace(r.PathValue("lemma")))
		partner := strings.ToLower(strings.TrimSpace(r.PathValue("partner")))

		if err := lexicon.RemoveLink(r.Context(), lemma, partner); err != nil {
			writeError(log, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func NewClearHandler(log *slog.Logger, lexicon Lexicon) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("confirm") != "true" {
			http.Error(w, "clearing the lexicon requires confirm=true", http.StatusBadRequest)
			return
		}
		if err := lexicon.Clear(r.Context()); err != nil {
			writeError(log, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type StatsResponse struct {
	Lemmas int `json:"lemmas"`
	Links  int `json:"links"`
}

func NewStatsHandler(log *slog.Logger, lexicon Lexicon) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := lexicon.Stats(r.Context())
		writeJSON(log, w, http.StatusOK, StatsResponse{Lemmas: st.Lemmas, Links: st.Links})
	}
}

func NewDictionaryHandler(log *slog.Logger, lexicon Lexicon) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format, err := export.ParseFormat(r.URL.Query().Get("format"))
		if err != nil {
			writeError(log, w, err)
			return
		}

		entries, err := lexicon.Entries(r.Context())
		if err != nil {
			writeError(log, w, err)
			return
		}

		data, err := export.Dictionary(entries, format)
		if err != nil {
			writeError(log, w, err)
			return
		}

		w.Header().Set("Content-Type", format.ContentType())
		w.Header().Set("Content-Disposition", `attachment; filename="lexicon`+format.Extension()+`"`)
		if _, err := w.Write(data); err != nil {
			log.Error("cannot write dictionary", "error", err)
		}
	}
}

func NewReportHandler(log *slog.Logger, lexicon Lexicon) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := lexicon.Entries(r.Context())
		if err != nil {
			writeError(log, w, err)
			return
		}

		data, err := export.Report(entries)
		if err != nil {
			writeError(log, w, err)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="report.txt"`)
		if _, err := w.Write(data); err != nil {
			log.Error("cannot write report", "error", err)
		}
	}
}
