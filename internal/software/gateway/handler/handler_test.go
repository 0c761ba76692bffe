package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-manager/internal/domain/deliveryperson"
	"rental-manager/internal/domain/motorbike"
	"rental-manager/internal/domain/rental"
	"rental-manager/internal/general/logger"
	"rental-manager/internal/ports"
	"rental-manager/internal/software/gateway/rpc"
)

// fakeGatewaySvc implements ports.GatewayService with canned results.
type fakeGatewaySvc struct {
	createdBikes   []*motorbike.Motorbike
	createdPeople  []*deliveryperson.DeliveryPerson
	createdRentals []ports.CreateRentalInput

	bike      motorbike.Motorbike
	rental    rental.Rental
	amendment ports.AmendReturnDateResult
	err       error
}

func (s *fakeGatewaySvc) CreateMotorbike(ctx context.Context, m *motorbike.Motorbike) error {
	s.createdBikes = append(s.createdBikes, m)
	return s.err
}

func (s *fakeGatewaySvc) UpdateMotorbike(ctx context.Context, m *motorbike.Motorbike) error {
	return s.err
}

func (s *fakeGatewaySvc) DeleteMotorbike(ctx context.Context, m *motorbike.Motorbike) error {
	return s.err
}

func (s *fakeGatewaySvc) ListMotorbikes(ctx context.Context) ([]motorbike.Motorbike, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []motorbike.Motorbike{s.bike}, nil
}

func (s *fakeGatewaySvc) GetMotorbikeByPlate(ctx context.Context, plate string) (motorbike.Motorbike, error) {
	if s.err != nil {
		return motorbike.Motorbike{}, s.err
	}
	return s.bike, nil
}

func (s *fakeGatewaySvc) CreateDeliveryPerson(ctx context.Context, p *deliveryperson.DeliveryPerson) error {
	s.createdPeople = append(s.createdPeople, p)
	return s.err
}

func (s *fakeGatewaySvc) CreateRental(ctx context.Context, in ports.CreateRentalInput) error {
	s.createdRentals = append(s.createdRentals, in)
	return s.err
}

func (s *fakeGatewaySvc) GetRentalByID(ctx context.Context, id string) (rental.Rental, error) {
	if s.err != nil {
		return rental.Rental{}, s.err
	}
	return s.rental, nil
}

func (s *fakeGatewaySvc) AmendRentalReturnDate(ctx context.Context, id string, returnDate time.Time) (ports.AmendReturnDateResult, error) {
	if s.err != nil {
		return ports.AmendReturnDateResult{}, s.err
	}
	return s.amendment, nil
}

func newHandlerFixture() (*fakeGatewaySvc, *http.ServeMux) {
	svc := &fakeGatewaySvc{}
	mux := http.NewServeMux()
	NewGatewayHTTPHandler(svc, logger.New("test")).RegisterRoutes(mux)
	return svc, mux
}

func doRequest(mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestCreateMotorbikeAccepted(t *testing.T) {
	svc, mux := newHandlerFixture()

	rec := doRequest(mux, http.MethodPost, "/motorbikes",
		`{"id":"b-1","year":2024,"model":"CG 160","plate":"ABC-1234"}`)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, svc.createdBikes, 1)
	assert.True(t, svc.createdBikes[0].Is2024())
}

func TestCreateMotorbikeRejectsBadBody(t *testing.T) {
	_, mux := newHandlerFixture()

	rec := doRequest(mux, http.MethodPost, "/motorbikes", `{"id":"b-1","unknown_field":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(mux, http.MethodPost, "/motorbikes", `{"id":"b-1","year":1850,"model":"CG","plate":"X"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateMotorbikeMintsIDWhenOmitted(t *testing.T) {
	svc, mux := newHandlerFixture()

	rec := doRequest(mux, http.MethodPost, "/motorbikes", `{"year":2023,"model":"CG 160","plate":"ABC-1234"}`)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, svc.createdBikes, 1)
	assert.NotEmpty(t, svc.createdBikes[0].ID)
}

func TestGetMotorbikeByPlate(t *testing.T) {
	svc, mux := newHandlerFixture()
	svc.bike = motorbike.Motorbike{ID: "b-1", Year: 2023, Model: "CG 160", Plate: "ABC-1234"}

	rec := doRequest(mux, http.MethodGet, "/motorbikes/ABC-1234", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var m motorbike.Motorbike
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.Equal(t, "b-1", m.ID)
}

func TestGetRentalErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"remote not found", &rpc.RemoteError{Message: "rental not found"}, http.StatusNotFound},
		{"reply window expired", rpc.ErrTimeout, http.StatusGatewayTimeout},
		{"transport down", rpc.ErrTransport, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mux := newHandlerFixture()
			svc.err = tt.err

			rec := doRequest(mux, http.MethodGet, "/rentals/r-1", "")
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestCreateRental(t *testing.T) {
	svc, mux := newHandlerFixture()

	rec := doRequest(mux, http.MethodPost, "/rentals", `{
		"id":"r-1","delivery_person_id":"p-1","motorbike_id":"b-1",
		"start_date":"2026-04-01","end_date":"2026-04-08",
		"expected_end_date":"2026-04-08","plan":7
	}`)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, svc.createdRentals, 1)
	assert.Equal(t, 7, svc.createdRentals[0].PlanDays)
}

func TestCreateRentalRejectsReversedDates(t *testing.T) {
	svc, mux := newHandlerFixture()

	rec := doRequest(mux, http.MethodPost, "/rentals", `{
		"id":"r-1","delivery_person_id":"p-1","motorbike_id":"b-1",
		"start_date":"2026-04-08","end_date":"2026-04-01",
		"expected_end_date":"2026-04-01","plan":7
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.createdRentals)
}

func TestAmendReturnDate(t *testing.T) {
	svc, mux := newHandlerFixture()
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	snapshot, err := rental.New("r-1", "p-1", "b-1", start, start.AddDate(0, 0, 7), start.AddDate(0, 0, 7), rental.PlanDays7)
	require.NoError(t, err)
	svc.amendment = ports.AmendReturnDateResult{Rental: *snapshot, TotalValue: 162}

	rec := doRequest(mux, http.MethodPut, "/rentals/r-1/return", `{"return_date":"2026-04-06"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result ports.AmendReturnDateResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 162.0, result.TotalValue)
	assert.Equal(t, "r-1", result.ID)
}

func TestCreateDeliveryPersonValidation(t *testing.T) {
	svc, mux := newHandlerFixture()

	rec := doRequest(mux, http.MethodPost, "/delivery-people", `{
		"id":"p-1","name":"Ana Lima","legal_id":"12345678000190",
		"birth_date":"1994-06-12","license_number":"CNH-001","license_category":"AB"
	}`)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, svc.createdPeople, 1)
	assert.Equal(t, deliveryperson.LicenseAB, svc.createdPeople[0].LicenseCategory)

	rec = doRequest(mux, http.MethodPost, "/delivery-people", `{
		"id":"p-2","name":"Ana Lima","legal_id":"12345678000190",
		"birth_date":"1994-06-12","license_number":"CNH-002","license_category":"Z"
	}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
