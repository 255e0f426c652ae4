package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/umalmyha/customer-registry/internal/model"
	"github.com/umalmyha/customer-registry/internal/service"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	// CustomerServiceName is full name of customers gRPC service
	CustomerServiceName = "customers.CustomerService"
	// AuthServiceName is full name of auth gRPC service
	AuthServiceName = "customers.AuthService"
)

// CustomerGrpcServer is server API of customers gRPC service
type CustomerGrpcServer interface {
	GetByID(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error)
	GetAll(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	GetByCountry(context.Context, *wrapperspb.Int32Value) (*structpb.ListValue, error)
	Create(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Update(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteByID(context.Context, *wrapperspb.Int64Value) (*emptypb.Empty, error)
}

// AuthGrpcServer is server API of auth gRPC service
type AuthGrpcServer interface {
	Signup(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Login(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// CustomerServiceDesc describes customers gRPC service, messages are protobuf well-known types
var CustomerServiceDesc = grpc.ServiceDesc{
	ServiceName: CustomerServiceName,
	HandlerType: (*CustomerGrpcServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(CustomerServiceName, "GetByID", CustomerGrpcServer.GetByID),
		unaryMethod(CustomerServiceName, "GetAll", CustomerGrpcServer.GetAll),
		unaryMethod(CustomerServiceName, "GetByCountry", CustomerGrpcServer.GetByCountry),
		unaryMethod(CustomerServiceName, "Create", CustomerGrpcServer.Create),
		unaryMethod(CustomerServiceName, "Update", CustomerGrpcServer.Update),
		unaryMethod(CustomerServiceName, "DeleteByID", CustomerGrpcServer.DeleteByID),
	},
	Streams: []grpc.StreamDesc{},
}

// AuthServiceDesc describes auth gRPC service
var AuthServiceDesc = grpc.ServiceDesc{
	ServiceName: AuthServiceName,
	HandlerType: (*AuthGrpcServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(AuthServiceName, "Signup", AuthGrpcServer.Signup),
		unaryMethod(AuthServiceName, "Login", AuthGrpcServer.Login),
	},
	Streams: []grpc.StreamDesc{},
}

// RegisterCustomerGrpcServer registers customers service on gRPC server
func RegisterCustomerGrpcServer(s grpc.ServiceRegistrar, srv CustomerGrpcServer) {
	s.RegisterService(&CustomerServiceDesc, srv)
}

// RegisterAuthGrpcServer registers auth service on gRPC server
func RegisterAuthGrpcServer(s grpc.ServiceRegistrar, srv AuthGrpcServer) {
	s.RegisterService(&AuthServiceDesc, srv)
}

func unaryMethod[S, Req, Res any](service, method string, call func(S, context.Context, *Req) (Res, error)) grpc.MethodDesc {
	fullMethod := fmt.Sprintf("/%s/%s", service, method)

	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}

			if interceptor == nil {
				return call(srv.(S), ctx, in)
			}

			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod,
			}

			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(S), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// AuthGrpcHandler is gRPC handler for auth endpoint
type AuthGrpcHandler struct {
	authSvc   service.AuthService
	validator echo.Validator
}

// NewAuthGrpcHandler builds new AuthGrpcHandler
func NewAuthGrpcHandler(authSvc service.AuthService, validator echo.Validator) *AuthGrpcHandler {
	return &AuthGrpcHandler{
		authSvc:   authSvc,
		validator: validator,
	}
}

// Signup signs up user
func (h *AuthGrpcHandler) Signup(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var cr credentials
	if err := h.decode(req, &cr); err != nil {
		return nil, err
	}

	u, err := h.authSvc.Signup(ctx, cr.Email, cr.Password)
	if err != nil {
		return nil, err
	}

	return toStruct(&newUser{ID: u.ID, Email: u.Email})
}

// Login logins user
func (h *AuthGrpcHandler) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var cr credentials
	if err := h.decode(req, &cr); err != nil {
		return nil, err
	}

	token, err := h.authSvc.Login(ctx, cr.Email, cr.Password, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	return toStruct(&accessToken{Token: token.Signed, ExpiresAt: token.ExpiresAt})
}

func (h *AuthGrpcHandler) decode(req *structpb.Struct, cr *credentials) error {
	if err := fromStruct(req, cr); err != nil {
		return err
	}
	return h.validator.Validate(cr)
}

// CustomerGrpcHandler is gRPC handler for customers endpoint
type CustomerGrpcHandler struct {
	customerSvc service.CustomerService
	validator   echo.Validator
}

// NewCustomerGrpcHandler builds CustomerGrpcHandler
func NewCustomerGrpcHandler(customerSvc service.CustomerService, validator echo.Validator) *CustomerGrpcHandler {
	return &CustomerGrpcHandler{
		customerSvc: customerSvc,
		validator:   validator,
	}
}

// GetByID gets customer by id
func (h *CustomerGrpcHandler) GetByID(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	id, err := grpcCustomerID(req)
	if err != nil {
		return nil, err
	}

	c, err := h.customerSvc.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toStruct(c)
}

// GetAll gets all customers
func (h *CustomerGrpcHandler) GetAll(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	customers, err := h.customerSvc.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toListValue(customers)
}

// GetByCountry gets customers of country
func (h *CustomerGrpcHandler) GetByCountry(ctx context.Context, req *wrapperspb.Int32Value) (*structpb.ListValue, error) {
	code := req.GetValue()
	if code <= 0 || code > 999 {
		return nil, status.Error(codes.InvalidArgument, "country code must be positive 3-digit number")
	}

	customers, err := h.customerSvc.FindByCountry(ctx, int16(code))
	if err != nil {
		return nil, err
	}
	return toListValue(customers)
}

// Create creates new customer
func (h *CustomerGrpcHandler) Create(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var nc newCustomer
	if err := fromStruct(req, &nc); err != nil {
		return nil, err
	}

	if err := validate(ctx, h.validator, &nc); err != nil {
		return nil, err
	}

	c, err := h.customerSvc.Create(ctx, nc.toModel())
	if err != nil {
		return nil, err
	}
	return toStruct(c)
}

// Update updates customer and returns its actual state
func (h *CustomerGrpcHandler) Update(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var icc identifiedCustomerChanges
	if err := fromStruct(req, &icc); err != nil {
		return nil, err
	}

	if err := validate(ctx, h.validator, &icc); err != nil {
		return nil, err
	}

	existing, err := h.customerSvc.FindByID(ctx, icc.ID)
	if err != nil {
		return nil, err
	}

	if kept := icc.keptPhone(existing); kept != nil {
		if err := validate(ctx, h.validator, kept); err != nil {
			return nil, err
		}
	}

	upd := icc.toModel(icc.ID)
	if err := h.customerSvc.Update(ctx, upd); err != nil {
		return nil, err
	}

	updated := upd.Apply(*existing)
	return toStruct(&updated)
}

// DeleteByID deletes customer by id
func (h *CustomerGrpcHandler) DeleteByID(ctx context.Context, req *wrapperspb.Int64Value) (*emptypb.Empty, error) {
	id, err := grpcCustomerID(req)
	if err != nil {
		return nil, err
	}

	if err := h.customerSvc.DeleteByID(ctx, id); err != nil {
		return nil, err
	}
	return new(emptypb.Empty), nil
}

func grpcCustomerID(req *wrapperspb.Int64Value) (int, error) {
	id := req.GetValue()
	if id <= 0 {
		return 0, status.Error(codes.InvalidArgument, "customer id must be positive number")
	}
	return int(id), nil
}

// structpb can't hold every Go numeric type, so values travel through their json form
func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode response - %w", err)
	}

	s := new(structpb.Struct)
	if err := protojson.Unmarshal(raw, s); err != nil {
		return nil, fmt.Errorf("failed to build response struct - %w", err)
	}
	return s, nil
}

func fromStruct(s *structpb.Struct, v any) error {
	raw, err := protojson.Marshal(s)
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "failed to read payload - %v", err)
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return status.Errorf(codes.InvalidArgument, "malformed payload - %v", err)
	}
	return nil
}

func toListValue(customers []*model.Customer) (*structpb.ListValue, error) {
	values := make([]*structpb.Value, 0, len(customers))
	for _, c := range customers {
		s, err := toStruct(c)
		if err != nil {
			return nil, err
		}
		values = append(values, structpb.NewStructValue(s))
	}
	return &structpb.ListValue{Values: values}, nil
}
