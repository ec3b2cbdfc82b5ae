package nscache

import "errors"

var (
	ErrBackendRequired   = errors.New("nscache: backend is required")
	ErrNamespaceRequired = errors.New("nscache: namespace is required")
)
