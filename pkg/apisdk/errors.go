package apisdk

import (
	"errors"

	"github.com/hilthontt/huddle/pkg/apisdk/internal/apierror"
)

// Error is returned for every non-2xx response. Inspect StatusCode for the
// HTTP status and Message for the server's error text.
type Error = apierror.Error

var (
	// ErrRoomNotFound matches any 404 response via errors.Is.
	ErrRoomNotFound = apierror.ErrNotFound

	ErrMissingIDParameter = errors.New("missing required id parameter")
)
