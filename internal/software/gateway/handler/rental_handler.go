package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"rental-manager/internal/ports"
)

type createRentalRequest struct {
	ID               string `json:"id"`
	DeliveryPersonID string `json:"delivery_person_id"`
	MotorbikeID      string `json:"motorbike_id"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	ExpectedEndDate  string `json:"expected_end_date"`
	Plan             int    `json:"plan"`
}

type amendReturnDateRequest struct {
	ReturnDate string `json:"return_date"`
}

func (handler *GatewayHTTPHandler) handleCreateRental(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	var req createRentalRequest
	if err := handler.decodeJSON(r, &req); err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if strings.TrimSpace(req.ID) == "" {
		req.ID = uuid.NewString()
	}
	if strings.TrimSpace(req.DeliveryPersonID) == "" || strings.TrimSpace(req.MotorbikeID) == "" {
		handler.httpError(ctx, w, http.StatusBadRequest, "delivery_person_id and motorbike_id are required", nil)
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "start_date is invalid", err)
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "end_date is invalid", err)
		return
	}
	expectedEnd, err := parseDate(req.ExpectedEndDate)
	if err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "expected_end_date is invalid", err)
		return
	}
	if expectedEnd.Before(startDate) {
		handler.httpError(ctx, w, http.StatusBadRequest, "expected_end_date precedes start_date", nil)
		return
	}

	in := ports.CreateRentalInput{
		ID:               strings.TrimSpace(req.ID),
		DeliveryPersonID: strings.TrimSpace(req.DeliveryPersonID),
		MotorbikeID:      strings.TrimSpace(req.MotorbikeID),
		StartDate:        startDate,
		EndDate:          endDate,
		ExpectedEndDate:  expectedEnd,
		PlanDays:         req.Plan,
	}

	if err := handler.svc.CreateRental(ctx, in); err != nil {
		handler.httpError(ctx, w, http.StatusBadGateway, "Failed to queue rental request", err)
		return
	}

	ctx = handler.logger.WithRentalID(ctx, in.ID)
	handler.logger.Info(ctx, "rental_create_queued", "Rental request queued",
		map[string]any{"motorbike_id": in.MotorbikeID, "plan": in.PlanDays})

	handler.jsonResponse(ctx, w, http.StatusAccepted, in)
}

func (handler *GatewayHTTPHandler) handleGetRental(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		handler.httpError(ctx, w, http.StatusBadRequest, "rental id is required", nil)
		return
	}
	ctx = handler.logger.WithRentalID(ctx, id)

	rent, err := handler.svc.GetRentalByID(ctx, id)
	if err != nil {
		handler.queryError(ctx, w, err, http.StatusNotFound)
		return
	}

	handler.jsonResponse(ctx, w, http.StatusOK, rent)
}

func (handler *GatewayHTTPHandler) handleAmendReturnDate(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		handler.httpError(ctx, w, http.StatusBadRequest, "rental id is required", nil)
		return
	}
	ctx = handler.logger.WithRentalID(ctx, id)

	var req amendReturnDateRequest
	if err := handler.decodeJSON(r, &req); err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	returnDate, err := parseDate(req.ReturnDate)
	if err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "return_date is invalid", err)
		return
	}

	result, err := handler.svc.AmendRentalReturnDate(ctx, id, returnDate)
	if err != nil {
		handler.queryError(ctx, w, err, http.StatusUnprocessableEntity)
		return
	}

	handler.logger.Info(ctx, "rental_return_priced", "Return date amendment priced",
		map[string]any{"total_value": result.TotalValue})

	handler.jsonResponse(ctx, w, http.StatusOK, result)
}
