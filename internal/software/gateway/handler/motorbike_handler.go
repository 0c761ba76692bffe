package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"rental-manager/internal/domain/motorbike"
)

type createMotorbikeRequest struct {
	ID    string `json:"id"`
	Year  int    `json:"year"`
	Model string `json:"model"`
	Plate string `json:"plate"`
}

type updateMotorbikeRequest struct {
	Plate string `json:"plate"`
}

func (handler *GatewayHTTPHandler) handleCreateMotorbike(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	var req createMotorbikeRequest
	if err := handler.decodeJSON(r, &req); err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if strings.TrimSpace(req.ID) == "" {
		req.ID = uuid.NewString()
	}

	m, err := motorbike.New(req.ID, req.Year, req.Model, req.Plate)
	if err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	if err := handler.svc.CreateMotorbike(ctx, m); err != nil {
		handler.httpError(ctx, w, http.StatusBadGateway, "Failed to queue motorbike registration", err)
		return
	}

	handler.logger.Info(ctx, "motorbike_create_queued", "Motorbike registration queued",
		map[string]any{"motorbike_id": m.ID, "is_2024": m.Is2024()})

	handler.jsonResponse(ctx, w, http.StatusAccepted, m)
}

func (handler *GatewayHTTPHandler) handleUpdateMotorbike(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		handler.httpError(ctx, w, http.StatusBadRequest, "motorbike id is required", nil)
		return
	}

	var req updateMotorbikeRequest
	if err := handler.decodeJSON(r, &req); err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if strings.TrimSpace(req.Plate) == "" {
		handler.httpError(ctx, w, http.StatusBadRequest, "plate is required", nil)
		return
	}

	m := &motorbike.Motorbike{ID: id, Plate: strings.TrimSpace(req.Plate)}
	if err := handler.svc.UpdateMotorbike(ctx, m); err != nil {
		handler.httpError(ctx, w, http.StatusBadGateway, "Failed to queue plate update", err)
		return
	}

	handler.logger.Info(ctx, "motorbike_update_queued", "Plate update queued",
		map[string]any{"motorbike_id": id})

	handler.jsonResponse(ctx, w, http.StatusAccepted, m)
}

func (handler *GatewayHTTPHandler) handleDeleteMotorbike(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		handler.httpError(ctx, w, http.StatusBadRequest, "motorbike id is required", nil)
		return
	}

	if err := handler.svc.DeleteMotorbike(ctx, &motorbike.Motorbike{ID: id}); err != nil {
		handler.httpError(ctx, w, http.StatusBadGateway, "Failed to queue motorbike removal", err)
		return
	}

	handler.logger.Info(ctx, "motorbike_delete_queued", "Motorbike removal queued",
		map[string]any{"motorbike_id": id})

	handler.jsonResponse(ctx, w, http.StatusAccepted, nil)
}

func (handler *GatewayHTTPHandler) handleListMotorbikes(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	bikes, err := handler.svc.ListMotorbikes(ctx)
	if err != nil {
		handler.queryError(ctx, w, err, http.StatusUnprocessableEntity)
		return
	}

	handler.jsonResponse(ctx, w, http.StatusOK, bikes)
}

func (handler *GatewayHTTPHandler) handleGetMotorbikeByPlate(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	plate := strings.TrimSpace(r.PathValue("plate"))
	if plate == "" {
		handler.httpError(ctx, w, http.StatusBadRequest, "plate is required", nil)
		return
	}

	m, err := handler.svc.GetMotorbikeByPlate(ctx, plate)
	if err != nil {
		handler.queryError(ctx, w, err, http.StatusNotFound)
		return
	}

	handler.jsonResponse(ctx, w, http.StatusOK, m)
}
