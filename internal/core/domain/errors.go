// internal/core/domain/errors.go
package domain

import "errors"

var (
	// ErrEmptyTarget indica un descriptor de target vacío
	ErrEmptyTarget = errors.New("empty target")

	// ErrInvalidTarget indica un descriptor de target no parseable
	ErrInvalidTarget = errors.New("invalid target")

	// ErrNoTargets indica que la lista resuelta no contiene targets
	ErrNoTargets = errors.New("no targets resolved")

	// ErrWrongTargetKind indica que un backend recibió un target de otra clase
	ErrWrongTargetKind = errors.New("wrong target kind for backend")
)
