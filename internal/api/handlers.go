package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/user/partscribe/internal/domain"
	"github.com/user/partscribe/internal/llm"
)

// successResponse is the transport shape for a fully-grounded result.
type successResponse struct {
	Description string                 `json:"description"`
	Products    []domain.ProductRecord `json:"products"`
	PageInfo    *domain.PageMetadata   `json:"pageInfo"`
	URL         string                 `json:"url"`
}

// degradedResponse is the transport shape when scraping failed and the
// description is generic. Still a 200: the request itself succeeded.
type degradedResponse struct {
	Description   string `json:"description"`
	ScrapingError bool   `json:"scrapingError"`
	ErrorDetails  string `json:"errorDetails"`
	URL           string `json:"url"`
}

func (s *Server) handleDescribeRequest(w http.ResponseWriter, r *http.Request) {
	var q domain.Query
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	q.Year = strings.TrimSpace(q.Year)
	q.Make = strings.TrimSpace(q.Make)
	q.Model = strings.TrimSpace(q.Model)
	if q.Year == "" || q.Make == "" || q.Model == "" {
		s.respondWithError(w, http.StatusBadRequest, "year, make and model are required", "")
		return
	}

	result, err := s.pipeline.Describe(r.Context(), q)
	if err != nil {
		var genErr *llm.GenerationError
		if errors.As(err, &genErr) {
			s.respondWithError(w, http.StatusBadGateway, "Description generation failed", err.Error())
			return
		}
		s.logger.Error("describe pipeline failed", zap.Error(err))
		s.respondWithError(w, http.StatusInternalServerError, "Could not process request", err.Error())
		return
	}

	if result.Degraded {
		s.respondWithJSON(w, http.StatusOK, degradedResponse{
			Description:   result.Description,
			ScrapingError: true,
			ErrorDetails:  result.DegradedReason,
			URL:           result.SourceURL,
		})
		return
	}

	s.respondWithJSON(w, http.StatusOK, successResponse{
		Description: result.Description,
		Products:    result.Products,
		PageInfo:    result.Metadata,
		URL:         result.SourceURL,
	})
}

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	healthStatus := make(map[string]string)

	if err := s.llm.Ping(ctx); err != nil {
		healthStatus["llm"] = "unhealthy"
		s.logger.Error("health check failed for llm backend", zap.Error(err))
	} else {
		healthStatus["llm"] = "healthy"
	}

	if healthStatus["llm"] != "healthy" {
		s.respondWithJSON(w, http.StatusServiceUnavailable, healthStatus)
		return
	}

	s.respondWithJSON(w, http.StatusOK, healthStatus)
}

// --- Helper Functions ---

func (s *Server) respondWithError(w http.ResponseWriter, code int, message, details string) {
	payload := map[string]string{"error": message}
	if details != "" {
		payload["details"] = details
	}
	s.respondWithJSON(w, code, payload)
}

func (s *Server) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
