package grpc

import (
	"encoding/json"
	"errors"

	"github.com/pinkcart/go-backend/pkg/e"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

func GRPCErrorResponse(err error) error {
	switch {
	case errors.Is(err, e.ErrProductNotFound):
		return status.Error(codes.NotFound, e.ErrProductNotFound.Error())
	case errors.Is(err, e.ErrProductIDRequired):
		return status.Error(codes.InvalidArgument, e.ErrProductIDRequired.Error())
	default:
		return status.Error(codes.Internal, e.ErrInternalServerError.Error())
	}
}

// toValue переводит JSON-представление в google.protobuf.Value, чтобы ответы gRPC совпадали с HTTP.
func toValue(v any) (*structpb.Value, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}

	return structpb.NewValue(generic)
}
