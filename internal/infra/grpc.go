package infra

import (
	"github.com/sirupsen/logrus"
	"github.com/umalmyha/customer-registry/internal/auth"
	"github.com/umalmyha/customer-registry/internal/handlers"
	"github.com/umalmyha/customer-registry/internal/interceptors"
	"google.golang.org/grpc"
)

// GrpcServer builds gRPC server with customers and auth services registered
func GrpcServer(
	jwtValidator *auth.JwtValidator,
	customerHandler handlers.CustomerGrpcServer,
	authHandler handlers.AuthGrpcServer,
	logger logrus.FieldLogger,
) *grpc.Server {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			interceptors.LoggingUnaryInterceptor(logger),
			interceptors.ErrorUnaryInterceptor(),
			interceptors.AuthUnaryInterceptor(
				jwtValidator,
				interceptors.UnaryApplicableForService(handlers.CustomerServiceName),
			),
		),
	)

	handlers.RegisterCustomerGrpcServer(srv, customerHandler)
	handlers.RegisterAuthGrpcServer(srv, authHandler)
	return srv
}
