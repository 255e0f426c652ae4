package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/umalmyha/customer-registry/internal/service"
)

// AuthHTTPHandler is http handler for auth endpoint
type AuthHTTPHandler struct {
	authSvc service.AuthService
}

// NewAuthHTTPHandler builds new AuthHTTPHandler
func NewAuthHTTPHandler(authSvc service.AuthService) *AuthHTTPHandler {
	return &AuthHTTPHandler{
		authSvc: authSvc,
	}
}

// Signup signups new user
// @Summary     Signup new account
// @Description Register new API operator account based on provided credentials
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       signup body	    credentials true "New user credentials"
// @Success     201    {object} newUser
// @Failure     400    {object} validation.PayloadError
// @Failure     409    {object} errors.BusinessErr
// @Failure     500    {object} echo.HTTPError
// @Router      /api/auth/signup [post]
func (h *AuthHTTPHandler) Signup(c echo.Context) error {
	var cr credentials
	if err := c.Bind(&cr); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&cr); err != nil {
		return err
	}

	u, err := h.authSvc.Signup(c.Request().Context(), cr.Email, cr.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, &newUser{
		ID:    u.ID,
		Email: u.Email,
	})
}

// Login logins user
// @Summary     Login user
// @Description Verifies provided credentials and signs access token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       login  body	    credentials true "User credentials"
// @Success     200    {object} accessToken
// @Failure     400    {object} validation.PayloadError
// @Failure     401    {object} errors.BusinessErr
// @Failure     500    {object} echo.HTTPError
// @Router      /api/auth/login [post]
func (h *AuthHTTPHandler) Login(c echo.Context) error {
	var cr credentials
	if err := c.Bind(&cr); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&cr); err != nil {
		return err
	}

	token, err := h.authSvc.Login(c.Request().Context(), cr.Email, cr.Password, time.Now().UTC())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &accessToken{
		Token:     token.Signed,
		ExpiresAt: token.ExpiresAt,
	})
}

// CustomerHTTPHandler is http handler for customer endpoint
type CustomerHTTPHandler struct {
	customerSvc service.CustomerService
}

// NewCustomerHTTPHandler builds new CustomerHTTPHandler
func NewCustomerHTTPHandler(customerSvc service.CustomerService) *CustomerHTTPHandler {
	return &CustomerHTTPHandler{customerSvc: customerSvc}
}

// Get gets customer
// @Summary     Get single customer by id
// @Description Returns single active customer with provided id
// @Tags        customers
// @Security	ApiKeyAuth
// @Produce     json
// @Param       id     path 	int true "Customer id"
// @Success     200    {object} model.Customer
// @Failure     400    {object} echo.HTTPError
// @Failure     404    {object} errors.BusinessErr
// @Failure     500    {object} echo.HTTPError
// @Router      /api/v1/customers/{id} [get]
// @Router      /api/v2/customers/{id} [get]
func (h *CustomerHTTPHandler) Get(c echo.Context) error {
	id, err := customerID(c)
	if err != nil {
		return err
	}

	customer, err := h.customerSvc.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, customer)
}

// GetAll gets all customers
// @Summary     Get all customers
// @Description Returns all active customers ordered by id
// @Tags        customers
// @Security	ApiKeyAuth
// @Produce     json
// @Success     200    {array}  model.Customer
// @Failure     500    {object} echo.HTTPError
// @Router      /api/v1/customers [get]
// @Router      /api/v2/customers [get]
func (h *CustomerHTTPHandler) GetAll(c echo.Context) error {
	customers, err := h.customerSvc.FindAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customers)
}

// GetByCountry gets customers of country
// @Summary     Get customers by country
// @Description Returns active customers of the country, list is empty if there are none
// @Tags        customers
// @Security	ApiKeyAuth
// @Produce     json
// @Param       code   path 	int true "ISO 3166-1 numeric country code"
// @Success     200    {array}  model.Customer
// @Failure     400    {object} echo.HTTPError
// @Failure     500    {object} echo.HTTPError
// @Router      /api/v1/customers/country/{code} [get]
// @Router      /api/v2/customers/country/{code} [get]
func (h *CustomerHTTPHandler) GetByCountry(c echo.Context) error {
	code, err := strconv.ParseInt(c.Param("code"), 10, 16)
	if err != nil || code <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "country code must be positive number")
	}

	customers, err := h.customerSvc.FindByCountry(c.Request().Context(), int16(code))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customers)
}

// Post creates new customer
// @Summary     New Customer
// @Description Creates new customer, id and demonym are assigned by the service
// @Tags        customers
// @Security	ApiKeyAuth
// @Accept		json
// @Produce     json
// @Param 		newCustomer body	 newCustomer true "Data for new customer"
// @Success     201    		{object} model.Customer
// @Failure     400    		{object} validation.PayloadError
// @Failure     409    		{object} errors.BusinessErr
// @Failure     422    		{object} errors.BusinessErr
// @Failure     500    		{object} echo.HTTPError
// @Router      /api/v1/customers [post]
// @Router      /api/v2/customers [post]
func (h *CustomerHTTPHandler) Post(c echo.Context) error {
	var nc newCustomer
	if err := c.Bind(&nc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()

	if err := validate(ctx, c.Echo().Validator, &nc); err != nil {
		return err
	}

	customer, err := h.customerSvc.Create(ctx, nc.toModel())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, customer)
}

// Put updates customer
// @Summary     Update Customer
// @Description Updates contacts and country of existing customer, omitted contacts stay untouched
// @Tags        customers
// @Security	ApiKeyAuth
// @Accept		json
// @Produce     json
// @Param       id     		    path 	int 		    true "Customer id"
// @Param 		customerChanges body	customerChanges true "Customer changes"
// @Success     200    		    {object} model.Customer
// @Failure     400    		    {object} validation.PayloadError
// @Failure     404    		    {object} errors.BusinessErr
// @Failure     409    		    {object} errors.BusinessErr
// @Failure     422    		    {object} errors.BusinessErr
// @Failure     500    		    {object} echo.HTTPError
// @Router      /api/v1/customers/{id} [put]
// @Router      /api/v2/customers/{id} [put]
func (h *CustomerHTTPHandler) Put(c echo.Context) error {
	id, err := customerID(c)
	if err != nil {
		return err
	}

	var cc customerChanges
	if err := (&echo.DefaultBinder{}).BindBody(c, &cc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()

	if err := validate(ctx, c.Echo().Validator, &cc); err != nil {
		return err
	}

	existing, err := h.customerSvc.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if kept := cc.keptPhone(existing); kept != nil {
		if err := validate(ctx, c.Echo().Validator, kept); err != nil {
			return err
		}
	}

	upd := cc.toModel(id)
	if err := h.customerSvc.Update(ctx, upd); err != nil {
		return err
	}

	updated := upd.Apply(*existing)
	return c.JSON(http.StatusOK, &updated)
}

// DeleteByID deletes customer
// @Summary     Delete customer by id
// @Description Disables or removes customer depending on configured delete mode
// @Tags        customers
// @Security	ApiKeyAuth
// @Param       id     path 	int true "Customer id"
// @Success     204    "Successful status code"
// @Failure     400    {object} echo.HTTPError
// @Failure     404    {object} errors.BusinessErr
// @Failure     500    {object} echo.HTTPError
// @Router      /api/v1/customers/{id} [delete]
// @Router      /api/v2/customers/{id} [delete]
func (h *CustomerHTTPHandler) DeleteByID(c echo.Context) error {
	id, err := customerID(c)
	if err != nil {
		return err
	}

	if err := h.customerSvc.DeleteByID(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// Health reports service is up
// @Summary     Health check
// @Tags        ops
// @Success     200 "Service is up"
// @Router      /health [get]
func Health(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func customerID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "customer id must be positive number")
	}
	return id, nil
}

type contextValidator interface {
	ValidateContext(context.Context, any) error
}

// validate passes request context to validators that accept it
func validate(ctx context.Context, v echo.Validator, i any) error {
	if v == nil {
		return echo.ErrValidatorNotRegistered
	}

	if cv, ok := v.(contextValidator); ok {
		return cv.ValidateContext(ctx, i)
	}
	return v.Validate(i)
}
