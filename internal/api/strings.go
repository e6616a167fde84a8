package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/gray-logic-strings/internal/strtab"
)

// subParamPrefix marks query parameters carrying placeholder substitutions.
// Example: ?key=issues.x.description&sub.entity=light.kitchen_fan
const subParamPrefix = "sub."

// tableResponse is the payload for a full string table.
type tableResponse struct {
	Integration string          `json:"integration"`
	Locale      string          `json:"locale"`
	Strings     json.RawMessage `json:"strings"`
}

// resolveResponse is the payload for a single resolved string.
type resolveResponse struct {
	Integration string `json:"integration"`
	Locale      string `json:"locale"`
	Key         string `json:"key"`
	Value       string `json:"value"`
}

// handleListTables returns the compiled tables in the catalog.
//
// GET /api/v1/strings
func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	infos, err := s.registry.List(r.Context())
	if err != nil {
		s.logger.Error("listing catalog tables", "error", err)
		writeInternalError(w, "failed to list catalog")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"tables": infos,
		"count":  len(infos),
	})
}

// handleGetTable returns an integration's full string table as a nested
// JSON document, negotiated against the requested locale.
//
// GET /api/v1/strings/{integration}?locale=de-AT
func (s *Server) handleGetTable(w http.ResponseWriter, r *http.Request) {
	integration := chi.URLParam(r, "integration")
	locale := r.URL.Query().Get("locale")

	table, selected, err := s.resolver.Table(integration, locale)
	if err != nil {
		switch {
		case errors.Is(err, strtab.ErrTableNotFound):
			writeNotFound(w, "unknown integration: "+integration)
		case errors.Is(err, strtab.ErrInvalidLocale):
			writeBadRequest(w, "invalid locale: "+locale)
		default:
			s.logger.Error("negotiating table", "integration", integration, "error", err)
			writeInternalError(w, "failed to load table")
		}
		return
	}

	data, err := table.Serialize()
	if err != nil {
		s.logger.Error("serialising table", "integration", integration, "error", err)
		writeInternalError(w, "failed to serialise table")
		return
	}

	writeJSON(w, http.StatusOK, tableResponse{
		Integration: integration,
		Locale:      selected,
		Strings:     data,
	})
}

// handleResolve returns a single rendered string.
//
// References are resolved against the common table and placeholders are
// substituted from sub.<name> query parameters.
//
// GET /api/v1/strings/{integration}/resolve?key=config.error.cannot_connect
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	integration := chi.URLParam(r, "integration")
	query := r.URL.Query()

	key := query.Get("key")
	if key == "" {
		writeBadRequest(w, "key query parameter is required")
		return
	}
	locale := query.Get("locale")

	// Collect placeholder substitutions from sub.<name> parameters.
	subs := make(map[string]string)
	for name, values := range query {
		if strings.HasPrefix(name, subParamPrefix) && len(values) > 0 {
			subs[strings.TrimPrefix(name, subParamPrefix)] = values[0]
		}
	}

	// Negotiate first so the response reports the locale actually used.
	_, selected, err := s.resolver.Table(integration, locale)
	if err == nil {
		var value string
		value, err = s.resolver.Resolve(integration, locale, key, subs)
		if err == nil {
			writeJSON(w, http.StatusOK, resolveResponse{
				Integration: integration,
				Locale:      selected,
				Key:         key,
				Value:       value,
			})
			return
		}
	}

	switch {
	case errors.Is(err, strtab.ErrTableNotFound):
		writeNotFound(w, "unknown integration: "+integration)
	case errors.Is(err, strtab.ErrKeyNotFound), errors.Is(err, strtab.ErrNotALeaf):
		writeNotFound(w, "unknown key: "+key)
	case errors.Is(err, strtab.ErrInvalidLocale):
		writeBadRequest(w, "invalid locale: "+locale)
	case errors.Is(err, strtab.ErrMissingPlaceholder):
		writeBadRequest(w, err.Error())
	case errors.Is(err, strtab.ErrInvalidKey):
		writeBadRequest(w, "invalid key: "+key)
	default:
		s.logger.Error("resolving string",
			"integration", integration,
			"key", key,
			"error", err,
		)
		writeInternalError(w, "failed to resolve string")
	}
}
