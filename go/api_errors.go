package storefrontserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	cartapp "github.com/xtremepizzaria/storefront/internal/domains/cart/application"
	cartdomain "github.com/xtremepizzaria/storefront/internal/domains/cart/domain"
	catalogapp "github.com/xtremepizzaria/storefront/internal/domains/catalog/application"
	catalogdomain "github.com/xtremepizzaria/storefront/internal/domains/catalog/domain"
	catalogports "github.com/xtremepizzaria/storefront/internal/domains/catalog/ports"
	ordermapper "github.com/xtremepizzaria/storefront/internal/domains/orders/adapters/http/mapper"
	ordersapp "github.com/xtremepizzaria/storefront/internal/domains/orders/application"
	orderports "github.com/xtremepizzaria/storefront/internal/domains/orders/ports"
	apierrors "github.com/xtremepizzaria/storefront/internal/shared/errors"
)

// responder turns domain and application errors into problem documents.
var responder = apierrors.NewChainedResponder("",
	missingProfileFieldsProblem,
	emptyCartProblem,
	notFoundProblem,
	invalidInputProblem,
)

func missingProfileFieldsProblem(err error) (apierrors.ProblemDetail, bool) {
	var missing *ordersapp.MissingProfileFieldsError
	if errors.As(err, &missing) {
		return apierrors.NewMissingProfileFieldsProblem(missing.Fields), true
	}
	return apierrors.ProblemDetail{}, false
}

func emptyCartProblem(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, ordersapp.ErrEmptyCart) {
		return apierrors.ErrEmptyCart.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func notFoundProblem(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, cartdomain.ErrInvalidIndex),
		errors.Is(err, cartapp.ErrUnknownItem),
		errors.Is(err, catalogports.ErrNotFound),
		errors.Is(err, ordersapp.ErrUnknownItem),
		errors.Is(err, orderports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func invalidInputProblem(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, cartapp.ErrInvalidInput),
		errors.Is(err, catalogapp.ErrInvalidInput),
		errors.Is(err, ordersapp.ErrInvalidInput),
		errors.Is(err, catalogdomain.ErrInvalidOptionValue),
		errors.Is(err, ordermapper.ErrUnknownMethod):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func respondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

// respondBadRequest reports a body or parameter that could not be decoded.
func respondBadRequest(c *gin.Context, err error) {
	responder.BadRequest(c, err.Error())
}
