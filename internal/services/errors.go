package services

import "errors"

// Domain error taxonomy. Services wrap these with a human-readable reason via
// fmt.Errorf("%w: ...", Err...); handlers map them onto HTTP statuses with
// errors.Is. NotFound and Forbidden are surfaced verbatim and never retried.
var (
  ErrNotFound     = errors.New("not found")
  ErrForbidden    = errors.New("forbidden")
  ErrBadRequest   = errors.New("bad request")
  ErrUnauthorized = errors.New("unauthorized")
  ErrValidation   = errors.New("validation failed")
)
