// Package errors provides RFC 7807 Problem Details for the storefront HTTP API.
package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ProblemDetail represents an RFC 7807 Problem Details response.
// Extensions are encoded as top-level members next to the standard ones.
// See: https://www.rfc-editor.org/rfc/rfc7807
type ProblemDetail struct {
	Type     string
	Title    string
	Status   int
	Detail   string
	Instance string
	// Extensions holds problem-specific members such as the missing profile fields.
	Extensions map[string]any
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

// WithExtension returns a copy with an additional extension member.
// Standard member names are reserved and ignored.
func (p ProblemDetail) WithExtension(key string, value any) ProblemDetail {
	if isStandardMember(key) {
		return p
	}
	extensions := make(map[string]any, len(p.Extensions)+1)
	for k, v := range p.Extensions {
		extensions[k] = v
	}
	extensions[key] = value
	p.Extensions = extensions
	return p
}

func (p ProblemDetail) MarshalJSON() ([]byte, error) {
	members := make(map[string]any, len(p.Extensions)+5)
	for k, v := range p.Extensions {
		members[k] = v
	}
	members["type"] = p.Type
	members["title"] = p.Title
	members["status"] = p.Status
	if p.Detail != "" {
		members["detail"] = p.Detail
	}
	if p.Instance != "" {
		members["instance"] = p.Instance
	}
	return json.Marshal(members)
}

func (p *ProblemDetail) UnmarshalJSON(data []byte) error {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}
	var out ProblemDetail
	fields := map[string]any{
		"type":     &out.Type,
		"title":    &out.Title,
		"status":   &out.Status,
		"detail":   &out.Detail,
		"instance": &out.Instance,
	}
	for key, raw := range members {
		if target, ok := fields[key]; ok {
			if err := json.Unmarshal(raw, target); err != nil {
				return fmt.Errorf("problem member %q: %w", key, err)
			}
			continue
		}
		var value any
		if err := json.Unmarshal(raw, &value); err != nil {
			return fmt.Errorf("problem member %q: %w", key, err)
		}
		if out.Extensions == nil {
			out.Extensions = make(map[string]any)
		}
		out.Extensions[key] = value
	}
	*p = out
	return nil
}

func isStandardMember(key string) bool {
	switch key {
	case "type", "title", "status", "detail", "instance":
		return true
	}
	return false
}

// Problem types as URI references.
const (
	TypeValidation           = "/problems/validation-error"
	TypeNotFound             = "/problems/not-found"
	TypeInternal             = "/problems/internal-error"
	TypeBadRequest           = "/problems/bad-request"
	TypeMissingProfileFields = "/problems/missing-profile-fields"
	TypeEmptyCart            = "/problems/empty-cart"
)

// ProfileRedirect is where a client sends the customer to finish the profile.
const ProfileRedirect = "/profile"

var (
	ErrNotFound = ProblemDetail{
		Type:   TypeNotFound,
		Title:  "Resource Not Found",
		Status: http.StatusNotFound,
	}

	// ErrValidation covers option, quantity and payment values the storefront rejects.
	ErrValidation = ProblemDetail{
		Type:   TypeValidation,
		Title:  "Validation Error",
		Status: http.StatusBadRequest,
	}

	// ErrBadRequest is used when a body or parameter cannot be decoded at all.
	ErrBadRequest = ProblemDetail{
		Type:   TypeBadRequest,
		Title:  "Bad Request",
		Status: http.StatusBadRequest,
	}

	ErrInternal = ProblemDetail{
		Type:   TypeInternal,
		Title:  "Internal Server Error",
		Status: http.StatusInternalServerError,
	}

	ErrMissingProfileFields = ProblemDetail{
		Type:   TypeMissingProfileFields,
		Title:  "Profile Incomplete",
		Status: http.StatusUnprocessableEntity,
	}

	ErrEmptyCart = ProblemDetail{
		Type:   TypeEmptyCart,
		Title:  "Cart Is Empty",
		Status: http.StatusUnprocessableEntity,
	}
)

// NewMissingProfileFieldsProblem lists the blank required fields and points at the profile form.
func NewMissingProfileFieldsProblem(fields []string) ProblemDetail {
	if fields == nil {
		fields = []string{}
	}
	return ErrMissingProfileFields.
		WithDetail("complete the profile before placing an order").
		WithExtension("fields", fields).
		WithExtension("redirect", ProfileRedirect)
}
