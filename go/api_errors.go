package exerciseserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	catalogdomain "github.com/Apurer/purchase-order-exercise/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/purchase-order-exercise/internal/domains/catalog/ports"
	exerciseapp "github.com/Apurer/purchase-order-exercise/internal/domains/exercise/application"
	exercisedomain "github.com/Apurer/purchase-order-exercise/internal/domains/exercise/domain"
	exerciseports "github.com/Apurer/purchase-order-exercise/internal/domains/exercise/ports"
	apierrors "github.com/Apurer/purchase-order-exercise/internal/shared/errors"
)

var responder = apierrors.NewChainedResponder("", mapExerciseError, mapCatalogError)

// respondBadRequest reports a malformed request body or parameter.
func respondBadRequest(c *gin.Context, err error) {
	responder.BadRequest(c, err.Error())
}

// respondError maps application errors to RFC 7807 responses.
func respondError(c *gin.Context, err error) {
	responder.RespondError(c, err)
}

func mapExerciseError(err error) (apierrors.ProblemDetail, bool) {
	var incomplete *exercisedomain.IncompleteOrderError
	switch {
	case errors.As(err, &incomplete):
		return apierrors.NewIncompleteOrderProblem(incomplete.Missing), true
	case errors.Is(err, exercisedomain.ErrInvalidStep):
		return apierrors.NewStepConflictProblem(err.Error(), ""), true
	case errors.Is(err, exerciseapp.ErrConflict):
		return apierrors.ErrStepConflict.WithDetail(err.Error()), true
	case errors.Is(err, catalogdomain.ErrConditionNotAllowed):
		return apierrors.ErrUnprocessable.WithDetail(err.Error()), true
	case errors.Is(err, exerciseapp.ErrInvalidInput):
		return apierrors.ErrBadRequest.WithDetail(err.Error()), true
	case errors.Is(err, exerciseapp.ErrNotFound):
		return apierrors.ErrNotFound.
			WithDetail(err.Error()).
			WithExtension("resourceType", notFoundResource(err)), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapCatalogError(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, catalogports.ErrOfferNotFound) {
		return apierrors.ErrNotFound.
			WithDetail(err.Error()).
			WithExtension("resourceType", "offer"), true
	}
	return apierrors.ProblemDetail{}, false
}

func notFoundResource(err error) string {
	switch {
	case errors.Is(err, catalogports.ErrOfferNotFound):
		return "offer"
	case errors.Is(err, exercisedomain.ErrUnknownItem):
		return "item"
	case errors.Is(err, catalogdomain.ErrUnknownConditionField):
		return "condition"
	case errors.Is(err, exerciseports.ErrNotFound):
		return "exercise"
	}
	return "resource"
}
