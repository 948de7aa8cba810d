package messaging

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sellgrid/sellermock/api/responses"
	"github.com/sellgrid/sellermock/api/validators"
	msgsvc "github.com/sellgrid/sellermock/internal/messaging"
	pkgerrors "github.com/sellgrid/sellermock/pkg/errors"
	"github.com/sellgrid/sellermock/pkg/logger"
)

// GetActions handles GET /messaging/v1/orders/{orderId}.
func GetActions(svc msgsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternalFailure, "messaging service unavailable"))
			return
		}

		payload, err := svc.ActionsForOrder(r.Context(), chi.URLParam(r, "orderId"), validators.QueryCSV(r, "marketplaceIds"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePayload(w, payload)
	}
}

// GetAttributes handles GET /messaging/v1/orders/{orderId}/attributes.
func GetAttributes(svc msgsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternalFailure, "messaging service unavailable"))
			return
		}

		payload, err := svc.BuyerAttributes(r.Context(), chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePayload(w, payload)
	}
}

type sendMessageRequest struct {
	Subject        *string  `json:"subject,omitempty"`
	Body           string   `json:"body" validate:"required"`
	MarketplaceIDs []string `json:"marketplaceIds" validate:"required,min=1,dive,required"`
}

// SendMessage handles POST /messaging/v1/orders/{orderId}/messages/{messageType}.
func SendMessage(svc msgsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternalFailure, "messaging service unavailable"))
			return
		}

		var payload sendMessageRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := msgsvc.SendInput{
			OrderID:        chi.URLParam(r, "orderId"),
			MessageType:    chi.URLParam(r, "messageType"),
			Body:           payload.Body,
			MarketplaceIDs: payload.MarketplaceIDs,
		}
		if payload.Subject != nil {
			input.Subject = *payload.Subject
		}

		message, err := svc.SendMessage(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePayloadStatus(w, http.StatusCreated, message)
	}
}
