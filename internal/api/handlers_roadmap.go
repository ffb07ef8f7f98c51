package api

import (
	"encoding/json"
	"net/http"

	"github.com/rijksuitgaven/roadmap/internal/roadmap"
)

// roadmapResponse is the body of GET /api/v1/team/roadmap.
type roadmapResponse struct {
	Tracks roadmap.Roadmap `json:"tracks"`
}

func (s *Server) handleRoadmap(w http.ResponseWriter, r *http.Request) {
	rm, err := s.svc.Roadmap(r.Context())
	if err != nil {
		code := roadmap.CodeOf(err)
		s.log.Error("roadmap unavailable", "code", code, "error", err)
		jsonError(w, errorMessage(code), string(code), statusFor(code))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(roadmapResponse{Tracks: rm})
}

func (s *Server) handleParseStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"stats": s.svc.Stats(),
	})
}

// statusFor maps an error code to the HTTP status returned to the admin UI.
func statusFor(code roadmap.ErrorCode) int {
	if code == roadmap.CodeSourceUnavailable {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// errorMessage keeps internal details such as file paths out of responses.
func errorMessage(code roadmap.ErrorCode) string {
	switch code {
	case roadmap.CodeMissingSource:
		return "roadmap source documents are missing"
	case roadmap.CodeSourceUnavailable:
		return "roadmap source documents could not be fetched"
	default:
		return "failed to compile roadmap"
	}
}

func jsonError(w http.ResponseWriter, msg, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg, "code": code})
}
