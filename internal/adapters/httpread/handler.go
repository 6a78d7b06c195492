// Package httpread is the read-only HTTP surface for offers and proofs
// (§6): a plain net/http ServeMux, not a framework, since the only job
// here is exposing GetOffer/GetProof — already pure functions of the
// store — as JSON over two routes.
package httpread

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/epandurski/swpt-payments/internal/domain/coordinatorerr"
	"github.com/epandurski/swpt-payments/internal/services/offers"
	"github.com/epandurski/swpt-payments/internal/swptlog"
)

// Handler wires the offer registry's read paths onto a ServeMux.
type Handler struct {
	Offers *offers.UseCase
	Logger swptlog.Logger
}

// Mux builds the ServeMux this handler serves. Callers embed it in their
// own http.Server.
func (h *Handler) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /payees/{payeeID}/offers/{offerID}", h.getOffer)
	mux.HandleFunc("GET /payees/{payeeID}/proofs/{proofID}", h.getProof)

	return mux
}

func (h *Handler) getOffer(w http.ResponseWriter, r *http.Request) {
	payeeID, offerID, ok := pathIDs(w, r, "payeeID", "offerID")
	if !ok {
		return
	}

	secret, ok := querySecret(w, r)
	if !ok {
		return
	}

	o, err := h.Offers.GetOffer(r.Context(), payeeID, offerID, secret)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, o)
}

func (h *Handler) getProof(w http.ResponseWriter, r *http.Request) {
	payeeID, proofID, ok := pathIDs(w, r, "payeeID", "proofID")
	if !ok {
		return
	}

	secret, ok := querySecret(w, r)
	if !ok {
		return
	}

	p, err := h.Offers.GetProof(r.Context(), payeeID, proofID, secret)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, p)
}

func pathIDs(w http.ResponseWriter, r *http.Request, payeeKey, entityKey string) (int64, int64, bool) {
	payeeID, err := strconv.ParseInt(r.PathValue(payeeKey), 10, 64)
	if err != nil {
		http.Error(w, "invalid payee id", http.StatusBadRequest)
		return 0, 0, false
	}

	entityID, err := strconv.ParseInt(r.PathValue(entityKey), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, 0, false
	}

	return payeeID, entityID, true
}

func querySecret(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	raw := r.URL.Query().Get("secret")

	secret, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		http.Error(w, "invalid secret encoding", http.StatusBadRequest)
		return nil, false
	}

	return secret, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Logger.Errorf("httpread: failed to encode response: %v", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var notFound coordinatorerr.EntityNotFoundError
	if errors.As(err, &notFound) {
		http.Error(w, notFound.Error(), http.StatusNotFound)
		return
	}

	h.Logger.Errorf("httpread: internal error: %v", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}
