// Package errors provides RFC 7807 Problem Details for HTTP APIs.
package errors

import (
	"fmt"
	"net/http"
)

// ProblemDetail represents an RFC 7807 Problem Details response.
// See: https://www.rfc-editor.org/rfc/rfc7807
type ProblemDetail struct {
	// Type is a URI reference that identifies the problem type.
	Type string `json:"type"`
	// Title is a short, human-readable summary of the problem type.
	Title string `json:"title"`
	// Status is the HTTP status code for this occurrence.
	Status int `json:"status"`
	// Detail is a human-readable explanation specific to this occurrence.
	Detail string `json:"detail,omitempty"`
	// Instance is a URI reference that identifies the specific occurrence.
	Instance string `json:"instance,omitempty"`
	// Extensions holds additional problem-specific properties.
	Extensions map[string]any `json:"extensions,omitempty"`
}

// Error implements the error interface.
func (p ProblemDetail) Error() string {
	if p.Detail != "" {
		return fmt.Sprintf("%s: %s", p.Title, p.Detail)
	}
	return p.Title
}

// WithDetail returns a copy with the given detail message.
func (p ProblemDetail) WithDetail(detail string) ProblemDetail {
	p.Detail = detail
	return p
}

// WithInstance returns a copy with the given instance URI.
func (p ProblemDetail) WithInstance(instance string) ProblemDetail {
	p.Instance = instance
	return p
}

// WithExtension returns a copy with an additional extension property.
func (p ProblemDetail) WithExtension(key string, value any) ProblemDetail {
	extensions := make(map[string]any, len(p.Extensions)+1)
	for k, v := range p.Extensions {
		extensions[k] = v
	}
	extensions[key] = value
	p.Extensions = extensions
	return p
}

// Problem types as URI references.
const (
	TypeNotFound        = "/problems/not-found"
	TypeBadRequest      = "/problems/bad-request"
	TypeUnprocessable   = "/problems/unprocessable-entity"
	TypeStepConflict    = "/problems/step-conflict"
	TypeIncompleteOrder = "/problems/incomplete-order"
	TypeInternal        = "/problems/internal-error"
)

// Pre-defined problem templates.
var (
	// ErrNotFound indicates an unknown session, offer, item or condition field.
	ErrNotFound = ProblemDetail{
		Type:   TypeNotFound,
		Title:  "Resource Not Found",
		Status: http.StatusNotFound,
	}

	// ErrBadRequest indicates the request was malformed.
	ErrBadRequest = ProblemDetail{
		Type:   TypeBadRequest,
		Title:  "Bad Request",
		Status: http.StatusBadRequest,
	}

	// ErrUnprocessable indicates a well-formed value the exercise does not offer.
	ErrUnprocessable = ProblemDetail{
		Type:   TypeUnprocessable,
		Title:  "Unprocessable Entity",
		Status: http.StatusUnprocessableEntity,
	}

	// ErrStepConflict indicates an action that the current wizard step does not allow.
	ErrStepConflict = ProblemDetail{
		Type:   TypeStepConflict,
		Title:  "Step Conflict",
		Status: http.StatusConflict,
	}

	// ErrIncompleteOrder indicates a finish request on an order that is not valid yet.
	ErrIncompleteOrder = ProblemDetail{
		Type:   TypeIncompleteOrder,
		Title:  "Incomplete Order",
		Status: http.StatusConflict,
	}

	// ErrInternal indicates an unexpected server error.
	ErrInternal = ProblemDetail{
		Type:   TypeInternal,
		Title:  "Internal Server Error",
		Status: http.StatusInternalServerError,
	}
)

// NewNotFoundProblem creates a not found error for a specific resource.
func NewNotFoundProblem(resourceType string, identifier any) ProblemDetail {
	return ErrNotFound.
		WithDetail(fmt.Sprintf("%s with identifier '%v' not found", resourceType, identifier)).
		WithExtension("resourceType", resourceType).
		WithExtension("identifier", identifier)
}

// NewStepConflictProblem reports the step the exercise is currently in.
func NewStepConflictProblem(detail, currentStep string) ProblemDetail {
	problem := ErrStepConflict.WithDetail(detail)
	if currentStep != "" {
		problem = problem.WithExtension("step", currentStep)
	}
	return problem
}

// NewIncompleteOrderProblem lists what the order still needs before it can be finished.
func NewIncompleteOrderProblem(missing []string) ProblemDetail {
	return ErrIncompleteOrder.
		WithDetail("the purchase order is not complete yet").
		WithExtension("missing", missing)
}
