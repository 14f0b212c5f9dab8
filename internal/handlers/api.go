package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"watchwise/internal/clients/metadata"
	"watchwise/internal/utils"
)

type APIHandler struct {
	client      metadata.Client
	defaultType metadata.MediaType
	logger      *utils.Logger
}

// A helper function to respond with JSON. The payload is encoded before
// anything is written; an encode error leaves the response untouched.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) error {
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			return err
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body.Bytes())
	return nil
}

// NewAPIHandler wires the search endpoint to client. defaultType is sent
// upstream whenever the caller does not pick a valid type.
func NewAPIHandler(client metadata.Client, defaultType metadata.MediaType, logger *utils.Logger) *APIHandler {
	return &APIHandler{client: client, defaultType: defaultType, logger: logger}
}

// Hello is the liveness route.
func (h *APIHandler) Hello(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "Hello world")
}

// Search answers GET /search?query=<term>[&type=<type>][&year=<year>].
// It always replies 200 with a JSON array; upstream failures yield [].
func (h *APIHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := h.parseSearchQuery(r)

	results := h.client.Search(r.Context(), q)
	if results == nil {
		results = []metadata.MediaSummary{}
	}

	if err := respondJSON(w, http.StatusOK, results); err != nil {
		h.logger.Error("Failed to encode search results:", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "[]\n")
	}
}

func (h *APIHandler) parseSearchQuery(r *http.Request) metadata.SearchQuery {
	params := r.URL.Query()

	mediaType := h.defaultType
	if raw := params.Get("type"); raw != "" {
		if parsed, ok := metadata.ParseMediaType(raw); ok {
			mediaType = parsed
		} else {
			h.logger.Debug("Ignoring unknown media type:", raw)
		}
	}

	return metadata.SearchQuery{
		Term: params.Get("query"),
		Type: mediaType,
		Year: params.Get("year"),
	}
}
