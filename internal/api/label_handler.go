package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/missivelabs/missive/internal/domain"
	"github.com/missivelabs/missive/internal/platform/logger"
	"github.com/missivelabs/missive/internal/service"
)

// LabelResponse represents one label with its usage count.
type LabelResponse struct {
	ID             string    `json:"id"`
	DisplayName    string    `json:"display_name"`
	NormalizedName string    `json:"normalized_name"`
	ItemCount      int       `json:"item_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// ItemResponse represents one archived item.
type ItemResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// StatsResponse represents aggregate label statistics.
type StatsResponse struct {
	LabelCount       int     `json:"label_count"`
	AssociationCount int     `json:"association_count"`
	AvgLabelsPerItem float64 `json:"avg_labels_per_item"`
	MaxLabelsPerItem int     `json:"max_labels_per_item"`
}

// LabelHandler handles label-related HTTP requests.
type LabelHandler struct {
	labelService service.LabelService
	logger       *slog.Logger
}

// NewLabelHandler creates a new LabelHandler.
func NewLabelHandler(labelService service.LabelService, logger *slog.Logger) *LabelHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for LabelHandler")
	}
	if labelService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("labelService cannot be nil for LabelHandler")
	}

	return &LabelHandler{
		labelService: labelService,
		logger:       logger.With(slog.String("component", "label_handler")),
	}
}

// ListLabels handles GET /labels requests. Labels are returned with
// their item counts, most used first.
func (h *LabelHandler) ListLabels(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	counts, err := h.labelService.ListLabels(r.Context())
	if err != nil {
		log.Error("failed to list labels", slog.String("error", err.Error()))
		RespondWithError(w, r, MapErrorToStatusCode(err), "Failed to list labels")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, labelCountsToResponse(counts))
}

// SearchLabels handles GET /labels/search?q= requests.
func (h *LabelHandler) SearchLabels(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	pattern := r.URL.Query().Get("q")
	if pattern == "" {
		RespondWithError(w, r, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}

	counts, err := h.labelService.SearchLabels(r.Context(), pattern)
	if err != nil {
		log.Error("failed to search labels",
			slog.String("pattern", pattern),
			slog.String("error", err.Error()))
		RespondWithError(w, r, MapErrorToStatusCode(err), "Failed to search labels")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, labelCountsToResponse(counts))
}

// ListLabelItems handles GET /labels/{id}/items requests.
func (h *LabelHandler) ListLabelItems(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	labelID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid label ID format")
		return
	}

	// Resolve the label first so a missing label is a 404, not an empty list.
	if _, err := h.labelService.GetLabel(r.Context(), labelID); err != nil {
		log.Debug("label lookup failed",
			slog.String("label_id", labelID.String()),
			slog.String("error", err.Error()))
		RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	items, err := h.labelService.ListItemsByLabel(r.Context(), labelID)
	if err != nil {
		log.Error("failed to list label items",
			slog.String("label_id", labelID.String()),
			slog.String("error", err.Error()))
		RespondWithError(w, r, MapErrorToStatusCode(err), "Failed to list items")
		return
	}

	response := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, ItemResponse{ID: item.ID, Title: item.Title})
	}
	RespondWithJSON(w, r, http.StatusOK, response)
}

// GetStats handles GET /stats requests.
func (h *LabelHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	stats, err := h.labelService.LabelStats(r.Context())
	if err != nil {
		log.Error("failed to collect stats", slog.String("error", err.Error()))
		RespondWithError(w, r, MapErrorToStatusCode(err), "Failed to collect statistics")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, StatsResponse{
		LabelCount:       stats.LabelCount,
		AssociationCount: stats.AssociationCount,
		AvgLabelsPerItem: stats.AvgLabelsPerItem,
		MaxLabelsPerItem: stats.MaxLabelsPerItem,
	})
}

func labelCountsToResponse(counts []domain.LabelCount) []LabelResponse {
	response := make([]LabelResponse, 0, len(counts))
	for _, count := range counts {
		response = append(response, LabelResponse{
			ID:             count.Label.ID.String(),
			DisplayName:    count.Label.DisplayName,
			NormalizedName: count.Label.NormalizedName,
			ItemCount:      count.ItemCount,
			CreatedAt:      count.Label.CreatedAt,
		})
	}
	return response
}
