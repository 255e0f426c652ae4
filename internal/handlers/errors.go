package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	apperrors "github.com/umalmyha/customer-registry/internal/errors"
	"github.com/umalmyha/customer-registry/internal/validation"
)

const internalErrMsg = "Internal server error"

// HTTPErrorHandler renders payload and business errors with the status of their kind
func HTTPErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var pldErr *validation.PayloadError
		if errors.As(err, &pldErr) {
			respond(c, http.StatusBadRequest, pldErr)
			return
		}

		var bErr *apperrors.BusinessErr
		if errors.As(err, &bErr) {
			status := statusOfKind(bErr.Kind())
			if status == http.StatusInternalServerError {
				logrus.WithField("kind", bErr.Kind()).Errorf("failed to process %s %s - %v", c.Request().Method, c.Path(), errors.Unwrap(err))
				respond(c, status, echo.NewHTTPError(status, internalErrMsg))
				return
			}
			respond(c, status, bErr)
			return
		}

		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			if echoErr.Code >= http.StatusInternalServerError {
				logrus.Errorf("failed to process %s %s - %v", c.Request().Method, c.Path(), err)
			}
			e.DefaultHTTPErrorHandler(err, c)
			return
		}

		logrus.Errorf("failed to process %s %s - %v", c.Request().Method, c.Path(), err)
		respond(c, http.StatusInternalServerError, echo.NewHTTPError(http.StatusInternalServerError, internalErrMsg))
	}
}

func statusOfKind(k apperrors.Kind) int {
	switch k {
	case apperrors.KindDuplicateEmail, apperrors.KindDuplicatePhone:
		return http.StatusConflict
	case apperrors.KindCountryResolution:
		return http.StatusUnprocessableEntity
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func respond(c echo.Context, status int, body any) {
	var err error
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}

	if err != nil {
		logrus.Errorf("failed to write error response - %v", err)
	}
}
