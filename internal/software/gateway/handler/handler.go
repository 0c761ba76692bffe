package handler

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"rental-manager/internal/general/logger"
	"rental-manager/internal/ports"
	"rental-manager/internal/software/gateway/rpc"
)

const maxBodyBytes = 1 << 20

// GatewayHTTPHandler adapts HTTP requests to the GatewayService.
type GatewayHTTPHandler struct {
	svc    ports.GatewayService
	logger *logger.Logger
}

// NewGatewayHTTPHandler wires an HTTP handler around the GatewayService.
func NewGatewayHTTPHandler(svc ports.GatewayService, logger *logger.Logger) *GatewayHTTPHandler {
	return &GatewayHTTPHandler{svc: svc, logger: logger}
}

// RegisterRoutes mounts the gateway endpoints on the provided mux.
func (handler *GatewayHTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /motorbikes", handler.handleCreateMotorbike)
	mux.HandleFunc("GET /motorbikes", handler.handleListMotorbikes)
	mux.HandleFunc("GET /motorbikes/{plate}", handler.handleGetMotorbikeByPlate)
	mux.HandleFunc("PUT /motorbikes/{id}", handler.handleUpdateMotorbike)
	mux.HandleFunc("DELETE /motorbikes/{id}", handler.handleDeleteMotorbike)

	mux.HandleFunc("POST /delivery-people", handler.handleCreateDeliveryPerson)

	mux.HandleFunc("POST /rentals", handler.handleCreateRental)
	mux.HandleFunc("GET /rentals/{id}", handler.handleGetRental)
	mux.HandleFunc("PUT /rentals/{id}/return", handler.handleAmendReturnDate)

	mux.HandleFunc("GET /health", handler.handleHealth)
}

func (handler *GatewayHTTPHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	handler.jsonResponse(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

// ----- general helpers -----

// decodeJSON reads a request body into dst, refusing unknown fields and
// oversized payloads.
func (handler *GatewayHTTPHandler) decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// jsonResponse encodes data to a buffer first so the status can still be
// changed when encoding fails.
func (handler *GatewayHTTPHandler) jsonResponse(ctx context.Context, w http.ResponseWriter, status int, data any) {
	var buf []byte
	var err error

	if data != nil {
		buf, err = json.Marshal(data)
		if err != nil {
			handler.logger.Error(ctx, "response_encode_failed", "Failed to encode response", err, nil)
			http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
			return
		}
	} else {
		buf = []byte("{}")
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf)
}

// httpError sends a JSON error response with a message.
func (handler *GatewayHTTPHandler) httpError(ctx context.Context, w http.ResponseWriter, status int, msg string, err error) {
	action := "request_failed"
	if status >= 500 {
		action = "http_internal_error"
	} else if status == http.StatusBadRequest {
		action = "validation_failed"
	} else if status == http.StatusUnsupportedMediaType {
		action = "unsupported_media_type"
	}
	handler.logger.Error(ctx, action, msg, err, nil)

	type errBody struct {
		Error string `json:"error"`
	}
	handler.jsonResponse(ctx, w, status, errBody{Error: msg})
}

// queryError maps a request/reply failure to an HTTP status. remoteStatus
// is used when the worker itself reported the failure.
func (handler *GatewayHTTPHandler) queryError(ctx context.Context, w http.ResponseWriter, err error, remoteStatus int) {
	var remote *rpc.RemoteError
	switch {
	case errors.As(err, &remote):
		handler.httpError(ctx, w, remoteStatus, remote.Message, err)
	case errors.Is(err, rpc.ErrTimeout):
		handler.httpError(ctx, w, http.StatusGatewayTimeout, "worker did not reply in time", err)
	default:
		handler.httpError(ctx, w, http.StatusBadGateway, "query failed", err)
	}
}

// withReqID extracts or generates a request ID and adds it to the context.
func (handler *GatewayHTTPHandler) withReqID(ctx context.Context, r *http.Request) context.Context {
	reqID := r.Header.Get("X-Request-ID")
	if strings.TrimSpace(reqID) == "" {
		reqID = randID()
	}
	return handler.logger.WithRequestID(ctx, reqID)
}

// randID generates a random 24-char hex string suitable for request IDs.
func randID() string {
	var b [12]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

// parseDate accepts RFC 3339 timestamps and bare dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
