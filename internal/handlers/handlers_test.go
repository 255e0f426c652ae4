package handlers

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	countryMocks "github.com/umalmyha/customer-registry/internal/country/mocks"
	apperrors "github.com/umalmyha/customer-registry/internal/errors"
	"github.com/umalmyha/customer-registry/internal/interceptors"
	"github.com/umalmyha/customer-registry/internal/model"
	"github.com/umalmyha/customer-registry/internal/service/mocks"
	"github.com/umalmyha/customer-registry/internal/validation"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const grpcConnBufSize = 1024 * 1024

const (
	testCountry = int16(214)
	testPhone   = "8095551234"
	testEmail   = "ana.diaz@somemail.com"
)

const newCustomerBody = `{
	"firstName": "Ana",
	"lastName": "Diaz",
	"email": "ana.diaz@somemail.com",
	"address": "Calle 1, Santo Domingo",
	"phone": "8095551234",
	"country": 214
}`

func testCustomer() *model.Customer {
	return &model.Customer{
		ID:        15,
		FirstName: "Ana",
		LastName:  "Diaz",
		Email:     testEmail,
		Address:   "Calle 1, Santo Domingo",
		Phone:     testPhone,
		Country:   testCountry,
		Demonym:   "Dominican",
	}
}

func testValidator(t *testing.T) (*validation.EchoValidator, *countryMocks.Lookup) {
	validate, trans, err := validation.EnglishTranslator()
	if err != nil {
		t.Fatalf("failed to build validator - %v", err)
	}

	lookupMock := countryMocks.NewLookup(t)
	if err := validation.RegisterCountryRules(validate, trans, lookupMock); err != nil {
		t.Fatalf("failed to register country rules - %v", err)
	}
	return validation.Echo(validate, trans), lookupMock
}

type customerHTTPTestSuite struct {
	suite.Suite
	e               *echo.Echo
	customerSvcMock *mocks.CustomerService
	lookupMock      *countryMocks.Lookup
}

func (s *customerHTTPTestSuite) SetupTest() {
	t := s.T()

	validator, lookupMock := testValidator(t)
	s.lookupMock = lookupMock
	s.customerSvcMock = mocks.NewCustomerService(t)

	s.e = echo.New()
	s.e.Validator = validator
	s.e.HTTPErrorHandler = HTTPErrorHandler(s.e)

	h := NewCustomerHTTPHandler(s.customerSvcMock)
	s.e.GET("/customers", h.GetAll)
	s.e.GET("/customers/:id", h.Get)
	s.e.GET("/customers/country/:code", h.GetByCountry)
	s.e.POST("/customers", h.Post)
	s.e.PUT("/customers/:id", h.Put)
	s.e.DELETE("/customers/:id", h.DeleteByID)
}

func (s *customerHTTPTestSuite) request(method string, target string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *customerHTTPTestSuite) validCountry() {
	s.lookupMock.On("IsValidCountryCode", mock.Anything, testCountry).Return(true).Once()
	s.lookupMock.On("IsPhonePrefixForCountry", mock.Anything, testCountry, testPhone).Return(true).Once()
}

func (s *customerHTTPTestSuite) businessErr(rec *httptest.ResponseRecorder) map[string]string {
	var body map[string]string
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body), "error body must be json")
	return body
}

func (s *customerHTTPTestSuite) TestPost() {
	created := testCustomer()

	s.validCountry()
	s.customerSvcMock.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Customer) bool {
		return c.ID == 0 && c.Email == testEmail && c.Country == testCountry && c.Demonym == ""
	})).Return(created, nil).Once()

	s.T().Log("create customer, id and demonym are assigned")
	{
		rec := s.request(http.MethodPost, "/customers", newCustomerBody)
		s.Require().Equal(http.StatusCreated, rec.Code, "customer must be created")

		var c model.Customer
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &c), "response must be customer")
		s.Assert().Equal(*created, c, "created customer differs")
	}
}

func (s *customerHTTPTestSuite) TestPostInvalidPayload() {
	s.validCountry()

	s.T().Log("create customer with malformed email and without last name")
	{
		body := strings.Replace(newCustomerBody, `"lastName": "Diaz",`, "", 1)
		body = strings.Replace(body, testEmail, "not-an-email", 1)

		rec := s.request(http.MethodPost, "/customers", body)
		s.Require().Equal(http.StatusBadRequest, rec.Code, "payload is invalid")

		var pld struct {
			Errors []validation.Violation `json:"errors"`
		}
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &pld), "response must be payload error")
		s.Require().Len(pld.Errors, 2, "two fields are invalid")
		s.Assert().Equal("lastName", pld.Errors[0].Field, "last name is missing")
		s.Assert().Equal("email", pld.Errors[1].Field, "email is malformed")
	}
}

func (s *customerHTTPTestSuite) TestPostMalformedJSON() {
	rec := s.request(http.MethodPost, "/customers", `{"firstName":`)
	s.Assert().Equal(http.StatusBadRequest, rec.Code, "malformed json must be rejected")
}

func (s *customerHTTPTestSuite) TestPostBusinessFailures() {
	failures := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{"duplicate email", apperrors.ErrDuplicateEmail, http.StatusConflict, "DuplicateEmail"},
		{"duplicate phone", apperrors.ErrDuplicatePhone, http.StatusConflict, "DuplicatePhone"},
		{"country resolution", apperrors.ErrCountryResolution, http.StatusUnprocessableEntity, "CountryResolutionFailure"},
	}

	for _, f := range failures {
		s.T().Logf("create customer fails with %s", f.name)
		s.validCountry()
		s.customerSvcMock.On("Create", mock.Anything, mock.AnythingOfType("*model.Customer")).Return(nil, f.err).Once()

		rec := s.request(http.MethodPost, "/customers", newCustomerBody)
		s.Require().Equal(f.status, rec.Code, "incorrect status for %s", f.name)
		s.Assert().Equal(f.kind, s.businessErr(rec)["kind"], "incorrect kind for %s", f.name)
	}
}

func (s *customerHTTPTestSuite) TestPostInternalFailuresAreHidden() {
	for _, err := range []error{apperrors.ErrStoreWrite.Wrap(context.DeadlineExceeded), apperrors.ErrIDGeneration} {
		s.validCountry()
		s.customerSvcMock.On("Create", mock.Anything, mock.AnythingOfType("*model.Customer")).Return(nil, err).Once()

		rec := s.request(http.MethodPost, "/customers", newCustomerBody)
		s.Require().Equal(http.StatusInternalServerError, rec.Code, "internal failure must be 500")
		s.Assert().Equal("Internal server error", s.businessErr(rec)["message"], "internal details must not be exposed")
	}
}

func (s *customerHTTPTestSuite) TestGet() {
	c := testCustomer()
	s.customerSvcMock.On("FindByID", mock.Anything, c.ID).Return(c, nil).Once()
	s.customerSvcMock.On("FindByID", mock.Anything, 16).Return(nil, apperrors.ErrCustomerNotFound).Once()

	s.T().Log("get existing customer")
	{
		rec := s.request(http.MethodGet, "/customers/15", "")
		s.Require().Equal(http.StatusOK, rec.Code, "customer exists")

		var found model.Customer
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &found), "response must be customer")
		s.Assert().Equal(*c, found, "customer differs")
	}

	s.T().Log("get missing customer")
	{
		rec := s.request(http.MethodGet, "/customers/16", "")
		s.Require().Equal(http.StatusNotFound, rec.Code, "customer doesn't exist")
		s.Assert().Equal("NotFound", s.businessErr(rec)["kind"], "kind must be not found")
	}

	s.T().Log("get customer by malformed id")
	{
		rec := s.request(http.MethodGet, "/customers/abc", "")
		s.Assert().Equal(http.StatusBadRequest, rec.Code, "id is malformed")

		rec = s.request(http.MethodGet, "/customers/0", "")
		s.Assert().Equal(http.StatusBadRequest, rec.Code, "id must be positive")
	}
}

func (s *customerHTTPTestSuite) TestGetAll() {
	s.customerSvcMock.On("FindAll", mock.Anything).Return([]*model.Customer{testCustomer()}, nil).Once()

	rec := s.request(http.MethodGet, "/customers", "")
	s.Require().Equal(http.StatusOK, rec.Code, "customers must be listed")

	var customers []model.Customer
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &customers), "response must be list of customers")
	s.Assert().Len(customers, 1, "single customer is expected")
}

func (s *customerHTTPTestSuite) TestGetByCountry() {
	s.customerSvcMock.On("FindByCountry", mock.Anything, int16(4)).Return(make([]*model.Customer, 0), nil).Once()

	s.T().Log("country without customers gives empty list")
	{
		rec := s.request(http.MethodGet, "/customers/country/4", "")
		s.Require().Equal(http.StatusOK, rec.Code, "empty list is not a failure")
		s.Assert().JSONEq("[]", rec.Body.String(), "list must be empty")
	}

	s.T().Log("malformed country code")
	{
		rec := s.request(http.MethodGet, "/customers/country/abc", "")
		s.Assert().Equal(http.StatusBadRequest, rec.Code, "code is malformed")
	}
}

func (s *customerHTTPTestSuite) TestPut() {
	existing := testCustomer()
	newEmail := "ana.diaz@othermail.com"

	s.lookupMock.On("IsValidCountryCode", mock.Anything, testCountry).Return(true).Once()
	s.customerSvcMock.On("FindByID", mock.Anything, existing.ID).Return(existing, nil).Once()
	s.customerSvcMock.On("Update", mock.Anything, mock.MatchedBy(func(upd *model.CustomerUpdate) bool {
		return upd.ID == existing.ID && upd.Email != nil && *upd.Email == newEmail && upd.Phone == nil
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.CustomerUpdate).Demonym = "Dominican"
	}).Return(nil).Once()

	s.T().Log("update email of customer, phone stays untouched")
	{
		rec := s.request(http.MethodPut, "/customers/15", `{"email":"ana.diaz@othermail.com","country":214}`)
		s.Require().Equal(http.StatusOK, rec.Code, "customer must be updated")

		var updated model.Customer
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &updated), "response must be customer")
		s.Assert().Equal(newEmail, updated.Email, "email must be updated")
		s.Assert().Equal(testPhone, updated.Phone, "phone must stay untouched")
		s.Assert().Equal("Dominican", updated.Demonym, "demonym must be recomputed")
	}
}

func (s *customerHTTPTestSuite) TestPutMissingCustomer() {
	s.lookupMock.On("IsValidCountryCode", mock.Anything, testCountry).Return(true).Once()
	s.customerSvcMock.On("FindByID", mock.Anything, 16).Return(nil, apperrors.ErrCustomerNotFound).Once()

	rec := s.request(http.MethodPut, "/customers/16", `{"country":214}`)
	s.Assert().Equal(http.StatusNotFound, rec.Code, "customer doesn't exist")
	s.customerSvcMock.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything)
}

func (s *customerHTTPTestSuite) TestPutBlankContacts() {
	for _, body := range []string{
		`{"address":"","country":214}`,
		`{"email":"","country":214}`,
	} {
		s.lookupMock.On("IsValidCountryCode", mock.Anything, testCountry).Return(true).Once()

		rec := s.request(http.MethodPut, "/customers/15", body)
		s.Assert().Equal(http.StatusBadRequest, rec.Code, "contacts can't be blanked: %s", body)
	}

	s.customerSvcMock.AssertNotCalled(s.T(), "FindByID", mock.Anything, 15)
	s.customerSvcMock.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything)
}

func (s *customerHTTPTestSuite) TestPutCountryChangeChecksStoredPhone() {
	const france = int16(250)
	existing := testCustomer()

	s.T().Log("stored phone doesn't match new country")
	{
		s.lookupMock.On("IsValidCountryCode", mock.Anything, france).Return(true).Once()
		s.customerSvcMock.On("FindByID", mock.Anything, existing.ID).Return(existing, nil).Once()
		s.lookupMock.On("IsPhonePrefixForCountry", mock.Anything, france, testPhone).Return(false).Once()

		rec := s.request(http.MethodPut, "/customers/15", `{"country":250}`)
		s.Require().Equal(http.StatusBadRequest, rec.Code, "stored phone must be checked")
		s.Assert().Contains(rec.Body.String(), `"field":"phone"`, "phone violation is expected")
		s.customerSvcMock.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything)
	}

	s.T().Log("new phone is supplied with new country")
	{
		newPhone := "33612345678"
		s.lookupMock.On("IsValidCountryCode", mock.Anything, france).Return(true).Once()
		s.lookupMock.On("IsPhonePrefixForCountry", mock.Anything, france, newPhone).Return(true).Once()
		s.customerSvcMock.On("FindByID", mock.Anything, existing.ID).Return(existing, nil).Once()
		s.customerSvcMock.On("Update", mock.Anything, mock.MatchedBy(func(upd *model.CustomerUpdate) bool {
			return upd.Country == france && upd.Phone != nil && *upd.Phone == newPhone
		})).Return(nil).Once()

		rec := s.request(http.MethodPut, "/customers/15", `{"phone":"33612345678","country":250}`)
		s.Assert().Equal(http.StatusOK, rec.Code, "customer must be moved to new country")
	}
}

func (s *customerHTTPTestSuite) TestPutWithoutCountry() {
	rec := s.request(http.MethodPut, "/customers/15", `{"address":"Calle 2"}`)
	s.Assert().Equal(http.StatusBadRequest, rec.Code, "country is mandatory for update")
}

func (s *customerHTTPTestSuite) TestDeleteByID() {
	s.customerSvcMock.On("DeleteByID", mock.Anything, 15).Return(nil).Once()
	s.customerSvcMock.On("DeleteByID", mock.Anything, 15).Return(apperrors.ErrCustomerNotFound).Once()

	s.T().Log("delete customer")
	{
		rec := s.request(http.MethodDelete, "/customers/15", "")
		s.Assert().Equal(http.StatusNoContent, rec.Code, "customer must be deleted")
	}

	s.T().Log("delete customer second time")
	{
		rec := s.request(http.MethodDelete, "/customers/15", "")
		s.Assert().Equal(http.StatusNotFound, rec.Code, "deleted customer is not found")
	}
}

// start customer http handler test suite
func TestCustomerHTTPTestSuite(t *testing.T) {
	suite.Run(t, new(customerHTTPTestSuite))
}

type authHTTPTestSuite struct {
	suite.Suite
	e           *echo.Echo
	authSvcMock *mocks.AuthService
}

func (s *authHTTPTestSuite) SetupTest() {
	t := s.T()

	validator, _ := testValidator(t)
	s.authSvcMock = mocks.NewAuthService(t)

	s.e = echo.New()
	s.e.Validator = validator
	s.e.HTTPErrorHandler = HTTPErrorHandler(s.e)

	h := NewAuthHTTPHandler(s.authSvcMock)
	s.e.POST("/signup", h.Signup)
	s.e.POST("/login", h.Login)
}

func (s *authHTTPTestSuite) post(target string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *authHTTPTestSuite) TestSignup() {
	u := &model.User{ID: "bdf2f837-75f6-462a-b9ec-5dfb2e8f8792", Email: "operator@email.com"}
	s.authSvcMock.On("Signup", mock.Anything, u.Email, "secret_password").Return(u, nil).Once()
	s.authSvcMock.On("Signup", mock.Anything, u.Email, "secret_password").Return(nil, apperrors.ErrUserEmailReserved).Once()

	body := `{"email":"operator@email.com","password":"secret_password"}`

	rec := s.post("/signup", body)
	s.Require().Equal(http.StatusCreated, rec.Code, "user must be signed up")
	s.Assert().JSONEq(`{"id":"bdf2f837-75f6-462a-b9ec-5dfb2e8f8792","email":"operator@email.com"}`, rec.Body.String(), "new user differs")

	rec = s.post("/signup", body)
	s.Assert().Equal(http.StatusConflict, rec.Code, "email is already reserved")
}

func (s *authHTTPTestSuite) TestLogin() {
	expiresAt := time.Now().Add(time.Minute).Unix()
	s.authSvcMock.On("Login", mock.Anything, "operator@email.com", "secret_password", mock.AnythingOfType("time.Time")).
		Return(&model.Jwt{Signed: "signed", ExpiresAt: expiresAt}, nil).Once()
	s.authSvcMock.On("Login", mock.Anything, "operator@email.com", "wrong_password", mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrInvalidCredentials).Once()

	s.T().Log("login with correct credentials")
	{
		rec := s.post("/login", `{"email":"operator@email.com","password":"secret_password"}`)
		s.Require().Equal(http.StatusOK, rec.Code, "credentials are correct")

		var token accessToken
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &token), "response must be access token")
		s.Assert().Equal(accessToken{Token: "signed", ExpiresAt: expiresAt}, token, "access token differs")
	}

	s.T().Log("login with wrong password")
	{
		rec := s.post("/login", `{"email":"operator@email.com","password":"wrong_password"}`)
		s.Assert().Equal(http.StatusUnauthorized, rec.Code, "credentials are incorrect")
	}

	s.T().Log("login with too short password")
	{
		rec := s.post("/login", `{"email":"operator@email.com","password":"abc"}`)
		s.Assert().Equal(http.StatusBadRequest, rec.Code, "payload is invalid")
	}
}

// start auth http handler test suite
func TestAuthHTTPTestSuite(t *testing.T) {
	suite.Run(t, new(authHTTPTestSuite))
}

type grpcTestSuite struct {
	suite.Suite
	srv             *grpc.Server
	conn            *grpc.ClientConn
	customerSvcMock *mocks.CustomerService
	authSvcMock     *mocks.AuthService
	lookupMock      *countryMocks.Lookup
}

func (s *grpcTestSuite) SetupTest() {
	t := s.T()

	validator, lookupMock := testValidator(t)
	s.lookupMock = lookupMock
	s.customerSvcMock = mocks.NewCustomerService(t)
	s.authSvcMock = mocks.NewAuthService(t)

	lis := bufconn.Listen(grpcConnBufSize)

	s.srv = grpc.NewServer(grpc.ChainUnaryInterceptor(interceptors.ErrorUnaryInterceptor()))
	RegisterCustomerGrpcServer(s.srv, NewCustomerGrpcHandler(s.customerSvcMock, validator))
	RegisterAuthGrpcServer(s.srv, NewAuthGrpcHandler(s.authSvcMock, validator))

	go func() {
		_ = s.srv.Serve(lis)
	}()

	conn, err := grpc.DialContext(
		context.Background(),
		"bufnet",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
			return lis.Dial()
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	s.Require().NoError(err, "failed to dial grpc server")
	s.conn = conn
}

func (s *grpcTestSuite) TearDownTest() {
	if err := s.conn.Close(); err != nil {
		s.T().Logf("failed to close grpc connection - %v", err)
	}
	s.srv.Stop()
}

func (s *grpcTestSuite) invoke(method string, in any, out any) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return s.conn.Invoke(ctx, method, in, out)
}

func (s *grpcTestSuite) TestGetByID() {
	c := testCustomer()
	s.customerSvcMock.On("FindByID", mock.Anything, c.ID).Return(c, nil).Once()
	s.customerSvcMock.On("FindByID", mock.Anything, 16).Return(nil, apperrors.ErrCustomerNotFound).Once()

	s.T().Log("get existing customer")
	{
		res := new(structpb.Struct)
		err := s.invoke("/customers.CustomerService/GetByID", wrapperspb.Int64(15), res)
		s.Require().NoError(err, "customer exists")
		s.Assert().Equal(float64(15), res.Fields["id"].GetNumberValue(), "id differs")
		s.Assert().Equal("Dominican", res.Fields["demonym"].GetStringValue(), "demonym differs")
	}

	s.T().Log("get missing customer")
	{
		err := s.invoke("/customers.CustomerService/GetByID", wrapperspb.Int64(16), new(structpb.Struct))
		s.Assert().Equal(codes.NotFound, status.Code(err), "customer doesn't exist")
	}

	s.T().Log("get customer by non-positive id")
	{
		err := s.invoke("/customers.CustomerService/GetByID", wrapperspb.Int64(0), new(structpb.Struct))
		s.Assert().Equal(codes.InvalidArgument, status.Code(err), "id must be positive")
	}
}

func (s *grpcTestSuite) TestGetAllAndByCountry() {
	s.customerSvcMock.On("FindAll", mock.Anything).Return([]*model.Customer{testCustomer()}, nil).Once()
	s.customerSvcMock.On("FindByCountry", mock.Anything, int16(4)).Return(make([]*model.Customer, 0), nil).Once()

	all := new(structpb.ListValue)
	s.Require().NoError(s.invoke("/customers.CustomerService/GetAll", new(emptypb.Empty), all), "customers must be listed")
	s.Assert().Len(all.Values, 1, "single customer is expected")

	byCountry := new(structpb.ListValue)
	s.Require().NoError(s.invoke("/customers.CustomerService/GetByCountry", wrapperspb.Int32(4), byCountry), "customers must be listed")
	s.Assert().Empty(byCountry.Values, "country has no customers")
}

func (s *grpcTestSuite) TestCreate() {
	req, err := structpb.NewStruct(map[string]any{
		"firstName": "Ana",
		"lastName":  "Diaz",
		"email":     testEmail,
		"address":   "Calle 1, Santo Domingo",
		"phone":     testPhone,
		"country":   int(testCountry),
	})
	s.Require().NoError(err, "failed to build request")

	s.T().Log("create customer")
	{
		s.lookupMock.On("IsValidCountryCode", mock.Anything, testCountry).Return(true).Once()
		s.lookupMock.On("IsPhonePrefixForCountry", mock.Anything, testCountry, testPhone).Return(true).Once()
		s.customerSvcMock.On("Create", mock.Anything, mock.AnythingOfType("*model.Customer")).Return(testCustomer(), nil).Once()

		res := new(structpb.Struct)
		s.Require().NoError(s.invoke("/customers.CustomerService/Create", req, res), "customer must be created")
		s.Assert().Equal(float64(15), res.Fields["id"].GetNumberValue(), "id must be assigned")
	}

	s.T().Log("create customer with duplicate phone")
	{
		s.lookupMock.On("IsValidCountryCode", mock.Anything, testCountry).Return(true).Once()
		s.lookupMock.On("IsPhonePrefixForCountry", mock.Anything, testCountry, testPhone).Return(true).Once()
		s.customerSvcMock.On("Create", mock.Anything, mock.AnythingOfType("*model.Customer")).Return(nil, apperrors.ErrDuplicatePhone).Once()

		err := s.invoke("/customers.CustomerService/Create", req, new(structpb.Struct))
		s.Assert().Equal(codes.AlreadyExists, status.Code(err), "phone is already taken")
	}

	s.T().Log("create customer with invalid payload")
	{
		invalid, err := structpb.NewStruct(map[string]any{"firstName": "Ana"})
		s.Require().NoError(err, "failed to build request")

		err = s.invoke("/customers.CustomerService/Create", invalid, new(structpb.Struct))
		s.Assert().Equal(codes.InvalidArgument, status.Code(err), "payload is invalid")
	}
}

func (s *grpcTestSuite) TestUpdate() {
	existing := testCustomer()
	newAddress := "Calle 2, Santiago"

	req, err := structpb.NewStruct(map[string]any{
		"id":      existing.ID,
		"address": newAddress,
		"country": int(testCountry),
	})
	s.Require().NoError(err, "failed to build request")

	s.lookupMock.On("IsValidCountryCode", mock.Anything, testCountry).Return(true).Once()
	s.customerSvcMock.On("FindByID", mock.Anything, existing.ID).Return(existing, nil).Once()
	s.customerSvcMock.On("Update", mock.Anything, mock.MatchedBy(func(upd *model.CustomerUpdate) bool {
		return upd.ID == existing.ID && upd.Address != nil && *upd.Address == newAddress
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.CustomerUpdate).Demonym = "Dominican"
	}).Return(nil).Once()

	res := new(structpb.Struct)
	s.Require().NoError(s.invoke("/customers.CustomerService/Update", req, res), "customer must be updated")
	s.Assert().Equal(newAddress, res.Fields["address"].GetStringValue(), "address must be updated")
	s.Assert().Equal(testEmail, res.Fields["email"].GetStringValue(), "email must stay untouched")
}

func (s *grpcTestSuite) TestUpdateBlankAddress() {
	req, err := structpb.NewStruct(map[string]any{
		"id":      15,
		"address": "",
		"country": int(testCountry),
	})
	s.Require().NoError(err, "failed to build request")

	s.lookupMock.On("IsValidCountryCode", mock.Anything, testCountry).Return(true).Once()

	err = s.invoke("/customers.CustomerService/Update", req, new(structpb.Struct))
	s.Assert().Equal(codes.InvalidArgument, status.Code(err), "address can't be blanked")
	s.customerSvcMock.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything)
}

func (s *grpcTestSuite) TestDeleteByID() {
	s.customerSvcMock.On("DeleteByID", mock.Anything, 15).Return(nil).Once()
	s.customerSvcMock.On("DeleteByID", mock.Anything, 15).Return(apperrors.ErrStoreWrite).Once()

	s.Require().NoError(s.invoke("/customers.CustomerService/DeleteByID", wrapperspb.Int64(15), new(emptypb.Empty)), "customer must be deleted")

	err := s.invoke("/customers.CustomerService/DeleteByID", wrapperspb.Int64(15), new(emptypb.Empty))
	s.Require().Equal(codes.Internal, status.Code(err), "store failure is internal error")
	s.Assert().Equal("Internal server error", status.Convert(err).Message(), "internal details must not be exposed")
}

func (s *grpcTestSuite) TestLogin() {
	s.authSvcMock.On("Login", mock.Anything, "operator@email.com", "secret_password", mock.AnythingOfType("time.Time")).
		Return(&model.Jwt{Signed: "signed", ExpiresAt: 1700000000}, nil).Once()

	req, err := structpb.NewStruct(map[string]any{"email": "operator@email.com", "password": "secret_password"})
	s.Require().NoError(err, "failed to build request")

	res := new(structpb.Struct)
	s.Require().NoError(s.invoke("/customers.AuthService/Login", req, res), "credentials are correct")
	s.Assert().Equal("signed", res.Fields["accessToken"].GetStringValue(), "access token differs")
}

// start grpc handler test suite
func TestGrpcTestSuite(t *testing.T) {
	suite.Run(t, new(grpcTestSuite))
}
