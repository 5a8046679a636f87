package rpc

import (
	"errors"

	"github.com/signalsfoundry/hsr-catalog/model"
	"github.com/signalsfoundry/hsr-catalog/registry"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrInvalidRequest is returned when a request struct is missing or has a
// field of the wrong kind.
var ErrInvalidRequest = errors.New("invalid request")

// ToStatusError maps catalog errors onto gRPC status codes.
func ToStatusError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, model.ErrUnknownCodeName),
		errors.Is(err, model.ErrOutOfRange):
		return status.Error(codes.InvalidArgument, err.Error())

	case errors.Is(err, registry.ErrInvalidVariantForFrame):
		return status.Error(codes.NotFound, err.Error())

	case errors.Is(err, registry.ErrUnknownFrame):
		return status.Error(codes.FailedPrecondition, err.Error())

	default:
		return status.Error(codes.Internal, err.Error())
	}
}
