package httpapi

import "errors"

var (
	errNotInitialized = errors.New("httpapi: session not initialized, send init first")
	errUnknownPattern  = errors.New("httpapi: unknown seed pattern")
	errGARunning       = errors.New("httpapi: a GA run is already in progress")
	errNoGARunning     = errors.New("httpapi: no GA run in progress")
)
