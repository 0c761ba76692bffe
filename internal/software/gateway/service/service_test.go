package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-manager/internal/domain/motorbike"
	"rental-manager/internal/domain/rental"
	"rental-manager/internal/general/contracts"
	"rental-manager/internal/general/logger"
	"rental-manager/internal/ports"
)

type sentCommand struct {
	entityType string
	operation  string
	payload    any
}

type fakeCommands struct {
	sent []sentCommand
	err  error
}

func (c *fakeCommands) Send(ctx context.Context, entityType, operation string, payload any) error {
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, sentCommand{entityType: entityType, operation: operation, payload: payload})
	return nil
}

type fakeRPC struct {
	entityType string
	operation  string
	payload    any
	result     any
	err        error
}

func (c *fakeRPC) Call(ctx context.Context, entityType, operation string, payload any, out any) error {
	c.entityType = entityType
	c.operation = operation
	c.payload = payload
	if c.err != nil {
		return c.err
	}
	if out != nil && c.result != nil {
		raw, err := json.Marshal(c.result)
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, out)
	}
	return nil
}

func newSvcFixture() (*GatewayService, *fakeCommands, *fakeRPC) {
	commands := &fakeCommands{}
	rpcClient := &fakeRPC{}
	return NewGatewayService(logger.New("test"), commands, rpcClient), commands, rpcClient
}

func TestCreateMotorbikePublishesSingleCommand(t *testing.T) {
	svc, commands, _ := newSvcFixture()
	m := &motorbike.Motorbike{ID: "b-1", Year: 2023, Model: "CG 160", Plate: "ABC-1234"}

	require.NoError(t, svc.CreateMotorbike(context.Background(), m))

	require.Len(t, commands.sent, 1)
	assert.Equal(t, contracts.OpCreate, commands.sent[0].operation)
	assert.Equal(t, contracts.EntityMotorbike, commands.sent[0].entityType)
}

func TestCreateMotorbike2024AlsoNotifies(t *testing.T) {
	svc, commands, _ := newSvcFixture()
	m := &motorbike.Motorbike{ID: "b-1", Year: 2024, Model: "CG 160", Plate: "ABC-1234"}

	require.NoError(t, svc.CreateMotorbike(context.Background(), m))

	require.Len(t, commands.sent, 2)
	assert.Equal(t, contracts.OpCreate, commands.sent[0].operation)
	assert.Equal(t, contracts.OpIs2024, commands.sent[1].operation)
}

func TestCreateMotorbikePublishFailureSurfaces(t *testing.T) {
	svc, commands, _ := newSvcFixture()
	commands.err = errors.New("broker gone")

	err := svc.CreateMotorbike(context.Background(), &motorbike.Motorbike{ID: "b-1", Year: 2023})
	assert.Error(t, err)
}

func TestGetMotorbikeByPlate(t *testing.T) {
	svc, _, rpcClient := newSvcFixture()
	rpcClient.result = motorbike.Motorbike{ID: "b-1", Year: 2023, Model: "CG 160", Plate: "ABC-1234"}

	m, err := svc.GetMotorbikeByPlate(context.Background(), "ABC-1234")
	require.NoError(t, err)

	assert.Equal(t, "b-1", m.ID)
	assert.Equal(t, contracts.OpGetByPlate, rpcClient.operation)
	assert.Equal(t, plateQuery{Plate: "ABC-1234"}, rpcClient.payload)
}

func TestCreateRentalSendsWirePayload(t *testing.T) {
	svc, commands, _ := newSvcFixture()
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	in := ports.CreateRentalInput{
		ID: "r-1", DeliveryPersonID: "p-1", MotorbikeID: "b-1",
		StartDate: start, EndDate: start.AddDate(0, 0, 7), ExpectedEndDate: start.AddDate(0, 0, 7),
		PlanDays: 7,
	}
	require.NoError(t, svc.CreateRental(context.Background(), in))

	require.Len(t, commands.sent, 1)
	assert.Equal(t, contracts.EntityRental, commands.sent[0].entityType)

	payload, ok := commands.sent[0].payload.(createRentalPayload)
	require.True(t, ok)
	assert.Equal(t, 7, payload.Plan)
	assert.Equal(t, "p-1", payload.DeliveryPersonID)
}

func TestAmendRentalReturnDate(t *testing.T) {
	svc, _, rpcClient := newSvcFixture()
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	snapshot, err := rental.New("r-1", "p-1", "b-1", start, start.AddDate(0, 0, 7), start.AddDate(0, 0, 7), rental.PlanDays7)
	require.NoError(t, err)
	rpcClient.result = ports.AmendReturnDateResult{Rental: *snapshot, TotalValue: 162}

	result, err := svc.AmendRentalReturnDate(context.Background(), "r-1", start.AddDate(0, 0, 5))
	require.NoError(t, err)

	assert.Equal(t, 162.0, result.TotalValue)
	assert.Equal(t, contracts.OpUpdate, rpcClient.operation)

	payload, ok := rpcClient.payload.(ports.UpdateRentalPayload)
	require.True(t, ok)
	assert.Equal(t, "r-1", payload.ID)
	assert.Equal(t, "2026-04-06T00:00:00Z", payload.ExpectedEndDate)
}

func TestAmendRentalReturnDateErrorPassthrough(t *testing.T) {
	svc, _, rpcClient := newSvcFixture()
	rpcClient.err = errors.New("timeout")

	_, err := svc.AmendRentalReturnDate(context.Background(), "r-1", time.Now())
	assert.Error(t, err)
}
