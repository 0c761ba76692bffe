package dispatcher

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-manager/internal/domain/deliveryperson"
	"rental-manager/internal/domain/motorbike"
	"rental-manager/internal/domain/rental"
	"rental-manager/internal/general/contracts"
	"rental-manager/internal/general/logger"
	"rental-manager/internal/ports"
)

// fakeReplyPublisher records replies sent to private queues.
type fakeReplyPublisher struct {
	replies []sentReply
	err     error
}

type sentReply struct {
	replyTo       string
	correlationID string
	resp          contracts.ResponseMessage
}

func (p *fakeReplyPublisher) PublishReply(replyTo, correlationID string, body []byte) error {
	if p.err != nil {
		return p.err
	}
	var resp contracts.ResponseMessage
	if err := json.Unmarshal(body, &resp); err != nil {
		return err
	}
	p.replies = append(p.replies, sentReply{replyTo: replyTo, correlationID: correlationID, resp: resp})
	return nil
}

// fakeMotorbikeSvc implements ports.MotorbikeService with canned results.
type fakeMotorbikeSvc struct {
	created   []*motorbike.Motorbike
	updated   []*motorbike.Motorbike
	deleted   []string
	notified  []*motorbike.Motorbike
	createErr error

	listed  []*motorbike.Motorbike
	byPlate *motorbike.Motorbike
	getErr  error
}

func (s *fakeMotorbikeSvc) Create(ctx context.Context, m *motorbike.Motorbike) error {
	s.created = append(s.created, m)
	return s.createErr
}

func (s *fakeMotorbikeSvc) Update(ctx context.Context, m *motorbike.Motorbike) error {
	s.updated = append(s.updated, m)
	return nil
}

func (s *fakeMotorbikeSvc) Delete(ctx context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *fakeMotorbikeSvc) Notify2024(ctx context.Context, m *motorbike.Motorbike) {
	s.notified = append(s.notified, m)
}

func (s *fakeMotorbikeSvc) List(ctx context.Context) ([]*motorbike.Motorbike, error) {
	return s.listed, s.getErr
}

func (s *fakeMotorbikeSvc) GetByPlate(ctx context.Context, plate string) (*motorbike.Motorbike, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.byPlate, nil
}

type fakeDeliveryPersonSvc struct {
	created   []*deliveryperson.DeliveryPerson
	createErr error
}

func (s *fakeDeliveryPersonSvc) Create(ctx context.Context, p *deliveryperson.DeliveryPerson) error {
	s.created = append(s.created, p)
	return s.createErr
}

type fakeRentalSvc struct {
	created   []*rental.Rental
	createErr error

	byID    *rental.Rental
	getErr  error
	amended ports.AmendReturnDateResult
	amendTo time.Time
}

func (s *fakeRentalSvc) Create(ctx context.Context, r *rental.Rental) error {
	s.created = append(s.created, r)
	return s.createErr
}

func (s *fakeRentalSvc) GetByID(ctx context.Context, id string) (*rental.Rental, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.byID, nil
}

func (s *fakeRentalSvc) AmendExpectedEndDate(ctx context.Context, id string, newExpectedEnd time.Time) (ports.AmendReturnDateResult, error) {
	if s.getErr != nil {
		return ports.AmendReturnDateResult{}, s.getErr
	}
	s.amendTo = newExpectedEnd
	return s.amended, nil
}

type dispFixture struct {
	disp    *Dispatcher
	replies *fakeReplyPublisher
	bikes   *fakeMotorbikeSvc
	people  *fakeDeliveryPersonSvc
	rentals *fakeRentalSvc
}

func newDispFixture() *dispFixture {
	f := &dispFixture{
		replies: &fakeReplyPublisher{},
		bikes:   &fakeMotorbikeSvc{},
		people:  &fakeDeliveryPersonSvc{},
		rentals: &fakeRentalSvc{},
	}
	f.disp = NewDispatcher(logger.New("test"), nil, f.replies, f.bikes, f.people, f.rentals)
	return f
}

func commandDelivery(t *testing.T, entityType, operation string, payload any) amqp.Delivery {
	t.Helper()
	msg, err := contracts.NewOperationMessage(operation, entityType, payload)
	require.NoError(t, err)
	body, err := json.Marshal(msg)
	require.NoError(t, err)
	return amqp.Delivery{Body: body, RoutingKey: contracts.RoutingKey(entityType, operation)}
}

func requestDelivery(t *testing.T, entityType, operation string, payload any) amqp.Delivery {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	body, err := json.Marshal(contracts.RequestMessage{
		Operation:     operation,
		Payload:       raw,
		CorrelationID: "corr-1",
		ReplyTo:       "amq.gen-caller",
	})
	require.NoError(t, err)
	return amqp.Delivery{Body: body, RoutingKey: contracts.RoutingKey(entityType, operation)}
}

// ----- command queues -----

func TestMotorbikeCommandCreate(t *testing.T) {
	f := newDispFixture()
	m := &motorbike.Motorbike{ID: "b-1", Year: 2023, Model: "CG 160", Plate: "ABC-1234"}

	ack := f.disp.handleMotorbikeCommand(context.Background(), commandDelivery(t, contracts.EntityMotorbike, contracts.OpCreate, m))

	// commands are never retried, regardless of outcome
	assert.False(t, ack)
	require.Len(t, f.bikes.created, 1)
	assert.Equal(t, "b-1", f.bikes.created[0].ID)
}

func TestMotorbikeCommandFailureIsSwallowed(t *testing.T) {
	f := newDispFixture()
	f.bikes.createErr = errors.New("duplicate plate")
	m := &motorbike.Motorbike{ID: "b-1", Year: 2023, Model: "CG 160", Plate: "ABC-1234"}

	ack := f.disp.handleMotorbikeCommand(context.Background(), commandDelivery(t, contracts.EntityMotorbike, contracts.OpCreate, m))

	assert.False(t, ack)
	assert.Empty(t, f.replies.replies, "command handling must never reply")
}

func TestMotorbikeCommandIs2024(t *testing.T) {
	f := newDispFixture()
	m := &motorbike.Motorbike{ID: "b-1", Year: 2024, Model: "CG 160", Plate: "ABC-1234"}

	f.disp.handleMotorbikeCommand(context.Background(), commandDelivery(t, contracts.EntityMotorbike, contracts.OpIs2024, m))

	require.Len(t, f.bikes.notified, 1)
	assert.Empty(t, f.bikes.created)
}

func TestMotorbikeCommandMalformedEnvelope(t *testing.T) {
	f := newDispFixture()

	ack := f.disp.handleMotorbikeCommand(context.Background(), amqp.Delivery{Body: []byte("{broken")})

	assert.False(t, ack)
	assert.Empty(t, f.bikes.created)
}

func TestDeliveryPersonCommandCreate(t *testing.T) {
	f := newDispFixture()
	p := &deliveryperson.DeliveryPerson{
		ID: "p-1", Name: "Ana Lima", LegalID: "12345678000190",
		LicenseNumber: "CNH-001", LicenseCategory: deliveryperson.LicenseA,
	}

	ack := f.disp.handleDeliveryPersonCommand(context.Background(), commandDelivery(t, contracts.EntityDeliveryMan, contracts.OpCreate, p))

	assert.False(t, ack)
	require.Len(t, f.people.created, 1)
	assert.Equal(t, deliveryperson.LicenseA, f.people.created[0].LicenseCategory)
}

func TestRentalCommandCreate(t *testing.T) {
	f := newDispFixture()
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	wire := rentalWirePayload{
		ID: "r-1", DeliveryPersonID: "p-1", MotorbikeID: "b-1",
		StartDate: start, EndDate: start.AddDate(0, 0, 7), ExpectedEndDate: start.AddDate(0, 0, 7),
		Plan: 7,
	}

	ack := f.disp.handleRentalCommand(context.Background(), commandDelivery(t, contracts.EntityRental, contracts.OpCreate, wire))

	assert.False(t, ack)
	require.Len(t, f.rentals.created, 1)
	assert.Equal(t, rental.PlanDays7, f.rentals.created[0].Plan)
}

func TestRentalCommandInvalidDatesRejectedBeforeService(t *testing.T) {
	f := newDispFixture()
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	wire := rentalWirePayload{
		ID: "r-1", DeliveryPersonID: "p-1", MotorbikeID: "b-1",
		StartDate: start, EndDate: start, ExpectedEndDate: start.AddDate(0, 0, -1),
		Plan: 7,
	}

	ack := f.disp.handleRentalCommand(context.Background(), commandDelivery(t, contracts.EntityRental, contracts.OpCreate, wire))

	assert.False(t, ack)
	assert.Empty(t, f.rentals.created)
}

// ----- request queues -----

func TestMotorbikeRequestGetByPlate(t *testing.T) {
	f := newDispFixture()
	f.bikes.byPlate = &motorbike.Motorbike{ID: "b-1", Year: 2023, Model: "CG 160", Plate: "ABC-1234"}

	ack := f.disp.handleRequest(context.Background(),
		requestDelivery(t, contracts.EntityMotorbike, contracts.OpGetByPlate, map[string]string{"plate": "ABC-1234"}),
		f.disp.execMotorbikeRequest)

	assert.True(t, ack)
	require.Len(t, f.replies.replies, 1)

	sent := f.replies.replies[0]
	assert.Equal(t, "amq.gen-caller", sent.replyTo)
	assert.Equal(t, "corr-1", sent.correlationID)
	require.True(t, sent.resp.Success)

	var m motorbike.Motorbike
	require.NoError(t, json.Unmarshal(sent.resp.Payload, &m))
	assert.Equal(t, "ABC-1234", m.Plate)
}

func TestMotorbikeRequestNotFound(t *testing.T) {
	f := newDispFixture()
	f.bikes.getErr = motorbike.ErrNotFound

	ack := f.disp.handleRequest(context.Background(),
		requestDelivery(t, contracts.EntityMotorbike, contracts.OpGetByPlate, map[string]string{"plate": "ZZZ-0000"}),
		f.disp.execMotorbikeRequest)

	// the failure reply still acknowledges the request
	assert.True(t, ack)
	require.Len(t, f.replies.replies, 1)
	sent := f.replies.replies[0]
	assert.False(t, sent.resp.Success)
	assert.Equal(t, motorbike.ErrNotFound.Error(), sent.resp.Error)
}

func TestRequestUnsupportedOperation(t *testing.T) {
	f := newDispFixture()

	ack := f.disp.handleRequest(context.Background(),
		requestDelivery(t, contracts.EntityMotorbike, "explode", nil),
		f.disp.execMotorbikeRequest)

	assert.True(t, ack)
	require.Len(t, f.replies.replies, 1)
	assert.False(t, f.replies.replies[0].resp.Success)
}

func TestRequestMalformedEnvelopeBestEffortReply(t *testing.T) {
	f := newDispFixture()

	// missing operation, but the reply address is salvageable
	body := []byte(`{"correlation_id":"corr-9","reply_to":"amq.gen-caller"}`)
	ack := f.disp.handleRequest(context.Background(), amqp.Delivery{Body: body}, f.disp.execMotorbikeRequest)

	assert.False(t, ack)
	require.Len(t, f.replies.replies, 1)
	sent := f.replies.replies[0]
	assert.Equal(t, "corr-9", sent.correlationID)
	assert.False(t, sent.resp.Success)
	assert.Equal(t, "malformed request", sent.resp.Error)
}

func TestRequestMalformedEnvelopeNoReplyAddress(t *testing.T) {
	f := newDispFixture()

	ack := f.disp.handleRequest(context.Background(), amqp.Delivery{Body: []byte(`{"operation":""}`)}, f.disp.execMotorbikeRequest)

	assert.False(t, ack)
	assert.Empty(t, f.replies.replies)
}

func TestRequestReplyPublishFailureNacks(t *testing.T) {
	f := newDispFixture()
	f.replies.err = errors.New("caller queue gone")
	f.bikes.listed = []*motorbike.Motorbike{}

	ack := f.disp.handleRequest(context.Background(),
		requestDelivery(t, contracts.EntityMotorbike, contracts.OpGet, struct{}{}),
		f.disp.execMotorbikeRequest)

	assert.False(t, ack)
}

func TestRentalRequestUpdate(t *testing.T) {
	f := newDispFixture()
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	snapshot, err := rental.New("r-1", "p-1", "b-1", start, start.AddDate(0, 0, 7), start.AddDate(0, 0, 7), rental.PlanDays7)
	require.NoError(t, err)
	f.rentals.amended = ports.AmendReturnDateResult{Rental: *snapshot, TotalValue: 162}

	payload := ports.UpdateRentalPayload{ID: "r-1", ExpectedEndDate: "2026-04-06"}
	ack := f.disp.handleRequest(context.Background(),
		requestDelivery(t, contracts.EntityRental, contracts.OpUpdate, payload),
		f.disp.execRentalRequest)

	assert.True(t, ack)
	assert.Equal(t, time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC), f.rentals.amendTo)

	require.Len(t, f.replies.replies, 1)
	sent := f.replies.replies[0]
	require.True(t, sent.resp.Success)

	var result ports.AmendReturnDateResult
	require.NoError(t, json.Unmarshal(sent.resp.Payload, &result))
	assert.Equal(t, 162.0, result.TotalValue)
	assert.Equal(t, "r-1", result.ID)
}

func TestRentalRequestUpdateBadDate(t *testing.T) {
	f := newDispFixture()

	payload := ports.UpdateRentalPayload{ID: "r-1", ExpectedEndDate: "sometime soon"}
	ack := f.disp.handleRequest(context.Background(),
		requestDelivery(t, contracts.EntityRental, contracts.OpUpdate, payload),
		f.disp.execRentalRequest)

	assert.True(t, ack)
	require.Len(t, f.replies.replies, 1)
	assert.False(t, f.replies.replies[0].resp.Success)
}
