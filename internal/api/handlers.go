package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/crowdfund/internal/domain"
	"github.com/ignite/crowdfund/internal/service/campaign"
)

// Handlers contains all HTTP handlers for the campaign ledger API.
type Handlers struct {
	svc     *campaign.Service
	clock   campaign.Clock
	backend string
}

// NewHandlers creates a new Handlers instance. backend names the configured
// store implementation and is reported by the health endpoint.
func NewHandlers(svc *campaign.Service, clock campaign.Clock, backend string) *Handlers {
	return &Handlers{svc: svc, clock: clock, backend: backend}
}

// campaignResponse is the wire shape of a campaign. Status is derived from
// the clock on every response; it is never stored.
type campaignResponse struct {
	*domain.Campaign
	Status string `json:"status"`
}

func (h *Handlers) campaignJSON(c *domain.Campaign) campaignResponse {
	status := "open"
	if c.Ended(h.clock.Now()) {
		status = "ended"
	}
	return campaignResponse{Campaign: c, Status: status}
}

// HealthCheck reports service liveness and the active storage backend.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"backend": h.backend,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleCreateCampaign registers a new campaign.
// POST /api/campaigns
func (h *Handlers) HandleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var input campaign.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.svc.Create(r.Context(), input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, h.campaignJSON(c))
}

// HandleGetCampaign returns a single campaign.
// GET /api/campaigns/{id}
func (h *Handlers) HandleGetCampaign(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.campaignJSON(c))
}

// HandleUpdateCampaign overwrites a campaign's title and description.
// PUT /api/campaigns/{id}
func (h *Handlers) HandleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.svc.UpdateMetadata(r.Context(), chi.URLParam(r, "id"), req.Title, req.Description)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.campaignJSON(c))
}

// HandleDeleteCampaign removes a campaign and returns the removed record.
// DELETE /api/campaigns/{id}
func (h *Handlers) HandleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.campaignJSON(c))
}

// HandleGetDeadline returns only the deadline of a campaign.
// GET /api/campaigns/{id}/deadline
func (h *Handlers) HandleGetDeadline(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	deadline, err := h.svc.Deadline(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"id":       id,
		"deadline": deadline,
	})
}

// HandleDonate accepts a donation against a campaign.
// POST /api/campaigns/{id}/donations
func (h *Handlers) HandleDonate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DonorID string `json:"donor_id"`
		Amount  int64  `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.svc.Donate(r.Context(), chi.URLParam(r, "id"), req.DonorID, req.Amount)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.campaignJSON(c))
}

// HandleListDonations returns a campaign's donor records in arrival order.
// GET /api/campaigns/{id}/donations
func (h *Handlers) HandleListDonations(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	records, err := h.svc.Donations(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"id":     id,
		"donors": records,
	})
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps the service error taxonomy onto HTTP status codes.
func respondServiceError(w http.ResponseWriter, err error) {
	respondError(w, statusForError(err), err.Error())
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, campaign.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, campaign.ErrCampaignEnded):
		return http.StatusGone
	case errors.Is(err, campaign.ErrGoalExceeded):
		return http.StatusConflict
	case errors.Is(err, campaign.ErrStorage):
		return http.StatusInternalServerError
	default:
		// Remaining sentinels are input validation failures.
		return http.StatusBadRequest
	}
}
