package server

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/resume-matcher/internal/server/middleware"
)

// handleUpgrade marks the authenticated user as premium.
func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if _, err := s.userService.Upgrade(r.Context(), userID); err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"is_premium": true})
}

// paymentEvent is the subset of a payment-provider webhook payload this
// service reads. The provider integration itself lives outside this core;
// the only side effect in scope is marking the user premium.
type paymentEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			Metadata struct {
				UserID string `json:"user_id"`
			} `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// handlePaymentWebhook consumes checkout-completion events and flips the
// premium flag for the referenced user. Deliveries must carry the shared
// secret header when one is configured.
func (s *Server) handlePaymentWebhook(w http.ResponseWriter, r *http.Request) {
	if s.webhookSecret != "" {
		provided := r.Header.Get("X-Webhook-Secret")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(s.webhookSecret)) != 1 {
			writeError(w, http.StatusUnauthorized, "Invalid webhook secret")
			return
		}
	}

	var event paymentEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid webhook: "+err.Error())
		return
	}

	if event.Type == "checkout.session.completed" {
		userID, err := uuid.Parse(event.Data.Object.Metadata.UserID)
		if err == nil {
			if err := s.store.SetPremium(r.Context(), userID, true); err != nil {
				writeError(w, http.StatusInternalServerError, "Failed to upgrade user: "+err.Error())
				return
			}
		}
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
