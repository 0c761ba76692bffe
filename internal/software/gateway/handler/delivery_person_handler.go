package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"rental-manager/internal/domain/deliveryperson"
)

type createDeliveryPersonRequest struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	LegalID         string `json:"legal_id"`
	BirthDate       string `json:"birth_date"`
	LicenseNumber   string `json:"license_number"`
	LicenseCategory string `json:"license_category"`
}

func (handler *GatewayHTTPHandler) handleCreateDeliveryPerson(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	var req createDeliveryPersonRequest
	if err := handler.decodeJSON(r, &req); err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if strings.TrimSpace(req.ID) == "" {
		req.ID = uuid.NewString()
	}

	birthDate, err := parseDate(req.BirthDate)
	if err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "birth_date is invalid", err)
		return
	}

	category, err := deliveryperson.ParseLicenseCategory(req.LicenseCategory)
	if err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "license_category is invalid", err)
		return
	}

	p, err := deliveryperson.New(req.ID, req.Name, req.LegalID, birthDate, req.LicenseNumber, category)
	if err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	if err := handler.svc.CreateDeliveryPerson(ctx, p); err != nil {
		handler.httpError(ctx, w, http.StatusBadGateway, "Failed to queue delivery person registration", err)
		return
	}

	handler.logger.Info(ctx, "delivery_person_create_queued", "Delivery person registration queued",
		map[string]any{"delivery_person_id": p.ID, "license_category": p.LicenseCategory.String()})

	handler.jsonResponse(ctx, w, http.StatusAccepted, p)
}
