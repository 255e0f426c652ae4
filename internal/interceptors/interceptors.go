package interceptors

import (
	"strings"

	"google.golang.org/grpc"
)

// UnaryInterceptorApplicable decides whether interceptor runs for the call
type UnaryInterceptorApplicable func(*grpc.UnaryServerInfo) bool

func isUnaryInterceptorApplicable(info *grpc.UnaryServerInfo, fns ...UnaryInterceptorApplicable) bool {
	if len(fns) == 0 {
		return true
	}

	for _, fn := range fns {
		if !fn(info) {
			return false
		}
	}
	return true
}

// UnaryApplicableForService limits interceptor to methods of the service
func UnaryApplicableForService(svc string) UnaryInterceptorApplicable {
	prefix := "/" + svc + "/"
	return func(info *grpc.UnaryServerInfo) bool {
		// FullMethod is the full RPC method string, i.e., /package.service/method.
		return strings.HasPrefix(info.FullMethod, prefix)
	}
}
