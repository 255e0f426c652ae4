package interceptors

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// LoggingUnaryInterceptor logs every processed call with its outcome
func LoggingUnaryInterceptor(logger logrus.FieldLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, h grpc.UnaryHandler) (any, error) {
		start := time.Now()
		res, err := h(ctx, req)

		logger.WithFields(logrus.Fields{
			"method":  info.FullMethod,
			"code":    status.Code(err).String(),
			"latency": time.Since(start).String(),
		}).Info("grpc request processed")

		return res, err
	}
}
