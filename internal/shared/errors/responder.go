package errors

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type every error response of the exercise API uses.
const ContentTypeProblemJSON = "application/problem+json"

// internalDetail replaces the text of unmapped errors, which may carry
// store or workflow internals.
const internalDetail = "the exercise could not be processed"

// Responder writes problem+json bodies and aborts the gin chain.
type Responder struct {
	// BaseURI turns the relative /problems/... types into absolute URIs.
	BaseURI string
}

// NewResponder creates a responder; an empty baseURI keeps types relative.
func NewResponder(baseURI string) *Responder {
	return &Responder{BaseURI: baseURI}
}

// Respond writes the problem, defaulting its instance to the request path.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.BaseURI != "" && len(problem.Type) > 0 && problem.Type[0] == '/' {
		problem.Type = r.BaseURI + problem.Type
	}
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.AbortWithStatusJSON(problem.Status, problem)
}

// RespondError writes err as-is when it already is a ProblemDetail.
// Anything else is attached to the gin context for the access log and
// reported as a 500 without its text.
func (r *Responder) RespondError(c *gin.Context, err error) {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		r.Respond(c, problem)
		return
	}
	_ = c.Error(err)
	r.Respond(c, ErrInternal.WithDetail(internalDetail))
}

// BadRequest reports a malformed body or query.
func (r *Responder) BadRequest(c *gin.Context, detail string) {
	r.Respond(c, ErrBadRequest.WithDetail(detail))
}

// ErrorMapper turns an application error into a problem; ok is false when
// the mapper does not recognise err.
type ErrorMapper func(err error) (problem ProblemDetail, ok bool)

// ChainedResponder asks each mapper in order before falling back to Responder.
type ChainedResponder struct {
	*Responder
	mappers []ErrorMapper
}

// NewChainedResponder builds the responder the handlers share.
func NewChainedResponder(baseURI string, mappers ...ErrorMapper) *ChainedResponder {
	return &ChainedResponder{
		Responder: NewResponder(baseURI),
		mappers:   mappers,
	}
}

// RespondError is a no-op for a nil err.
func (r *ChainedResponder) RespondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			r.Respond(c, problem)
			return
		}
	}
	r.Responder.RespondError(c, err)
}
