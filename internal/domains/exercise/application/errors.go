package application

import (
	"errors"
	"fmt"

	catalogdomain "github.com/Apurer/purchase-order-exercise/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/purchase-order-exercise/internal/domains/catalog/ports"
	"github.com/Apurer/purchase-order-exercise/internal/domains/exercise/domain"
	"github.com/Apurer/purchase-order-exercise/internal/domains/exercise/ports"
)

var (
	// ErrInvalidInput signals a value outside what the exercise accepts.
	ErrInvalidInput = errors.New("invalid exercise input")
	// ErrNotFound signals an unknown session, offer, item or condition field.
	ErrNotFound = errors.New("exercise resource not found")
	// ErrConflict signals an operation that does not fit the current step.
	ErrConflict = errors.New("exercise state conflict")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrInvalidStep),
		errors.Is(err, domain.ErrOrderIncomplete):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, ports.ErrNotFound),
		errors.Is(err, catalogports.ErrOfferNotFound),
		errors.Is(err, domain.ErrUnknownItem),
		errors.Is(err, catalogdomain.ErrUnknownConditionField):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, catalogdomain.ErrConditionNotAllowed):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
