package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/stockease/internal/domain/errors"
	pkgAuth "github.com/polkiloo/stockease/internal/pkg/auth"
	"github.com/polkiloo/stockease/internal/pkg/payment"
	"github.com/polkiloo/stockease/internal/server/http/dto"
	"github.com/polkiloo/stockease/internal/server/http/middleware"
)

const (
	msgBadRequest     = "invalid request body"
	msgInvalidID      = "invalid id"
	msgInvalidLimit   = "invalid limit"
	msgValidation     = "validation failed"
	msgEmptyCart      = "Your cart is empty."
	msgCartChanged    = "Your cart changed during checkout. Review it and try again."
	msgInternalServer = "internal error"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// CurrentToken returns the session token the request was authorized with.
func CurrentToken(c *gin.Context) string {
	return c.GetString(middleware.TokenContextKey)
}

func abortWithMessage(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: msg})
}

// abortWithError maps domain errors onto HTTP statuses.
func abortWithError(c *gin.Context, err error) {
	var fields payment.ValidationErrors
	if errors.As(err, &fields) {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, dto.ValidationErrorResponse{
			Error:  msgValidation,
			Fields: fields,
		})
		return
	}

	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		abortWithMessage(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domainErrors.ErrInvalidCredentials), errors.Is(err, pkgAuth.ErrInvalidToken):
		abortWithMessage(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domainErrors.ErrForbidden):
		abortWithMessage(c, http.StatusForbidden, err.Error())
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		abortWithMessage(c, http.StatusConflict, err.Error())
	case errors.Is(err, domainErrors.ErrEmptyCart):
		abortWithMessage(c, http.StatusUnprocessableEntity, msgEmptyCart)
	case errors.Is(err, domainErrors.ErrCartChanged):
		abortWithMessage(c, http.StatusConflict, msgCartChanged)
	case errors.Is(err, domainErrors.ErrUnknownDeliveryOption):
		abortWithMessage(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domainErrors.ErrInvalidQuantity), errors.Is(err, domainErrors.ErrInvalidProduct),
		errors.Is(err, domainErrors.ErrInvalidProfile):
		abortWithMessage(c, http.StatusBadRequest, err.Error())
	default:
		_ = c.Error(err)
		abortWithMessage(c, http.StatusInternalServerError, msgInternalServer)
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		abortWithMessage(c, http.StatusBadRequest, msgInvalidID)
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		abortWithMessage(c, http.StatusBadRequest, msgBadRequest)
		return false
	}
	return true
}
