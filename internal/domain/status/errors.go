package status

import "errors"

var (
	ErrUnknownKind = errors.New("unknown status kind")
)
