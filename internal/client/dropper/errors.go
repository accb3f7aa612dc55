package dropper

import "errors"

var (
	ErrNotAFile        = errors.New("It is not a file")
	ErrUnsupportedType = errors.New("It is not a supported file type.")
)
