package errors

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type for Problem Details responses.
const ContentTypeProblemJSON = "application/problem+json"

// ErrorMapper turns a domain or application error into a problem, reporting false when it does not apply.
type ErrorMapper func(err error) (ProblemDetail, bool)

// ChainedResponder writes problem documents, asking each mapper in order before
// falling back to a 500.
type ChainedResponder struct {
	// BaseURI is prepended to relative problem types.
	BaseURI string
	mappers []ErrorMapper
	logger  *slog.Logger
}

// NewChainedResponder creates a responder with the given error mappers.
func NewChainedResponder(baseURI string, mappers ...ErrorMapper) *ChainedResponder {
	return &ChainedResponder{BaseURI: baseURI, mappers: mappers}
}

// WithLogger sets the logger used for unmapped errors; slog.Default is used otherwise.
func (r *ChainedResponder) WithLogger(logger *slog.Logger) *ChainedResponder {
	r.logger = logger
	return r
}

// Respond sends problem with the problem+json content type and aborts the handler chain.
func (r *ChainedResponder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.BaseURI != "" && len(problem.Type) > 0 && problem.Type[0] == '/' {
		problem.Type = r.BaseURI + problem.Type
	}
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.AbortWithStatusJSON(problem.Status, problem)
}

// RespondError maps err to a problem. A ProblemDetail anywhere in the chain is sent as is;
// anything unmapped is logged and reported as an internal error without its message.
func (r *ChainedResponder) RespondError(c *gin.Context, err error) {
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			r.Respond(c, problem)
			return
		}
	}
	var problem ProblemDetail
	if errors.As(err, &problem) {
		r.Respond(c, problem)
		return
	}
	r.log().LogAttrs(c.Request.Context(), slog.LevelError, "unmapped storefront error",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("error", err.Error()),
	)
	r.Respond(c, ErrInternal.WithDetail("the storefront could not complete the request"))
}

// BadRequest reports a body or parameter that could not be decoded.
func (r *ChainedResponder) BadRequest(c *gin.Context, detail string) {
	r.Respond(c, ErrBadRequest.WithDetail(detail))
}

func (r *ChainedResponder) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return slog.Default()
}

// Respond sends problem with relative problem types.
func Respond(c *gin.Context, problem ProblemDetail) {
	NewChainedResponder("").Respond(c, problem)
}

// HTTPStatusFromError extracts the HTTP status from a wrapped ProblemDetail, defaulting to 500.
func HTTPStatusFromError(err error) int {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		return problem.Status
	}
	return http.StatusInternalServerError
}
