package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"crpg-api/game"
	"crpg-api/utils"
)

const (
	characterIDLength = 8
	maxBodyBytes      = 64 << 10
)

// POST /derive - Compute derived attributes without creating a character
func (s *Server) handleDerive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var values map[string]int
	if err := decodeBody(w, r, &values); err != nil {
		writeBodyError(w, err)
		return
	}

	base, err := s.baseAttributes(values)
	if err != nil {
		writeAttributeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, game.CalculateDerived(base))
}

// POST /characters - Create a character
func (s *Server) handleCreateCharacter(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req struct {
		Name       string         `json:"name"`
		Attributes map[string]int `json:"attributes"`
	}

	if err := decodeBody(w, r, &req); err != nil {
		writeBodyError(w, err)
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	base, err := s.baseAttributes(req.Attributes)
	if err != nil {
		writeAttributeError(w, err)
		return
	}

	c := game.NewCharacter(utils.GenerateID(characterIDLength), req.Name, base)
	if err := s.roster.Add(c); err != nil {
		slog.Error("roster add failed", "character_id", c.ID, "err", err)
		writeError(w, http.StatusInternalServerError, "Could not create character")
		return
	}

	token, err := s.generateToken(c.ID)
	if err != nil {
		slog.Error("token generation failed", "character_id", c.ID, "err", err)
		writeError(w, http.StatusInternalServerError, "Could not issue token")
		return
	}

	slog.Info("character created", "character_id", c.ID, "name", c.Name)

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"character": c,
		"token":     token,
	})
}

// Router for /characters/{characterID}
func (s *Server) handleCharacterRoutes(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/characters/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	s.requireAuth(id, s.handleGetCharacter)(w, r)
}

// GET /characters/{characterID} - Get a character sheet
func (s *Server) handleGetCharacter(w http.ResponseWriter, r *http.Request, claims *Claims) {
	c := s.roster.Get(claims.CharacterID)
	if c == nil {
		writeError(w, http.StatusNotFound, "Character not found")
		return
	}

	writeJSON(w, http.StatusOK, c)
}

// GET /metrics - Prometheus text exposition
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	s.metrics.ServeHTTP(w, r)
}

// baseAttributes parses named attributes and applies the current rules,
// recording the outcome.
func (s *Server) baseAttributes(values map[string]int) (game.BaseAttributes, error) {
	base, err := game.ParseBaseAttributes(values)
	if err == nil {
		err = base.CheckBounds(s.Rules().AllowNegative)
	}
	s.metrics.ObserveDerivation(derivationOutcome(err))
	return base, err
}

// decodeBody decodes a JSON body of at most maxBodyBytes into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

func writeBodyError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}
	writeError(w, http.StatusBadRequest, "Invalid request body")
}

func writeAttributeError(w http.ResponseWriter, err error) {
	var missing *game.MissingAttributeError
	var invalid *game.InvalidAttributeError

	switch {
	case errors.As(err, &missing):
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":     err.Error(),
			"attribute": missing.Name,
		})
	case errors.As(err, &invalid):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error":     err.Error(),
			"attribute": invalid.Name,
		})
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}
