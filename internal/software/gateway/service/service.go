package service

import (
	"context"

	"rental-manager/internal/general/logger"
)

// commandSender publishes fire-and-forget commands toward the workers.
type commandSender interface {
	Send(ctx context.Context, entityType, operation string, payload any) error
}

// rpcCaller performs a blocking request/reply exchange over the bus.
type rpcCaller interface {
	Call(ctx context.Context, entityType, operation string, payload any, out any) error
}

// GatewayService fronts the worker tier: writes go out as commands with no
// outcome reported, reads go out as correlated requests and block for the
// reply.
type GatewayService struct {
	log      *logger.Logger
	commands commandSender
	rpc      rpcCaller
}

func NewGatewayService(log *logger.Logger, commands commandSender, rpc rpcCaller) *GatewayService {
	return &GatewayService{log: log, commands: commands, rpc: rpc}
}
