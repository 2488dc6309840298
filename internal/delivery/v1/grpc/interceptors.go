package grpc

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/pinkcart/go-backend/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// unaryLogger пишет в лог метод, код ответа и длительность вызова.
// Паника в обработчике превращается в codes.Internal и не роняет сервер.
func unaryLogger(log logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		start := time.Now()

		defer func() {
			if rec := recover(); rec != nil {
				log.Errorf(fmt.Errorf("panic: %v", rec), "%s panicked\n%s", info.FullMethod, debug.Stack())
				resp, err = nil, status.Error(codes.Internal, "Internal server error")
			}

			code := status.Code(err)
			if code == codes.Internal || code == codes.Unknown {
				log.Warnf("%s -> %s in %s", info.FullMethod, code, time.Since(start))
				return
			}
			log.Debugf("%s -> %s in %s", info.FullMethod, code, time.Since(start))
		}()

		return handler(ctx, req)
	}
}
