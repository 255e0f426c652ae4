package interceptors

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	apperrors "github.com/umalmyha/customer-registry/internal/errors"
	"github.com/umalmyha/customer-registry/internal/validation"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const internalErrMsg = "Internal server error"

func httpToGrpcCode(s int) codes.Code {
	switch s {
	case http.StatusBadRequest:
		return codes.InvalidArgument
	case http.StatusUnauthorized:
		return codes.Unauthenticated
	case http.StatusForbidden:
		return codes.PermissionDenied
	case http.StatusNotFound:
		return codes.NotFound
	default:
		return codes.Internal
	}
}

func kindToGrpcCode(k apperrors.Kind) codes.Code {
	switch k {
	case apperrors.KindDuplicateEmail, apperrors.KindDuplicatePhone:
		return codes.AlreadyExists
	case apperrors.KindCountryResolution:
		return codes.FailedPrecondition
	case apperrors.KindNotFound:
		return codes.NotFound
	case apperrors.KindUnauthorized:
		return codes.Unauthenticated
	default:
		return codes.Internal
	}
}

// ErrorUnaryInterceptor converts error retrieved from handler to gRPC error with corresponding code
func ErrorUnaryInterceptor(applicables ...UnaryInterceptorApplicable) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, h grpc.UnaryHandler) (any, error) {
		if !isUnaryInterceptorApplicable(info, applicables...) {
			return h(ctx, req)
		}

		res, err := h(ctx, req)
		if err == nil {
			return res, nil
		}

		if _, ok := status.FromError(err); ok { // it is already grpc status error
			return nil, err
		}

		code := codes.Internal

		var pldErr *validation.PayloadError
		var bErr *apperrors.BusinessErr
		var echoErr *echo.HTTPError

		switch {
		case errors.As(err, &pldErr):
			code = codes.InvalidArgument
		case errors.As(err, &bErr):
			code = kindToGrpcCode(bErr.Kind())
		case errors.As(err, &echoErr):
			code = httpToGrpcCode(echoErr.Code)
		}

		if code == codes.Internal {
			logrus.WithField("method", info.FullMethod).Errorf("error occurred on grpc request processing - %v", err)
			return nil, status.Error(code, internalErrMsg)
		}
		return nil, status.Error(code, err.Error())
	}
}
