package shared

import (
	"errors"
)

var (
	ErrItemSize = errors.New("item size mismatch")
)
