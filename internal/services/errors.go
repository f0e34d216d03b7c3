package services

import (
	"errors"
	"sort"
	"strings"
)

// Outcomes the handlers must tell apart: a validation failure, a duplicate
// in-flight request, a missing record and a backend failure each map to a
// different HTTP status.
var (
	ErrDNIInvalido        = errors.New("invalid dni")
	ErrSolicitudEnProceso = errors.New("request already in progress for this dni")
	ErrEstadoInvalido     = errors.New("invalid estado")
	ErrFaltanParametros   = errors.New("missing search parameters")
)

// FieldErrors carries one message per offending form field. No write happens
// when validation fails.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "invalid fields: " + strings.Join(keys, ", ")
}
