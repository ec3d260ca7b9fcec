package services

import (
  "errors"
)

// ErrChallengeNotFound is returned when an operation references a
// challenge id that does not exist. Handlers map it to 404.
var ErrChallengeNotFound = errors.New("challenge not found")
