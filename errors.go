package texemit

import "errors"

var (
	ErrInvalidMesh   = errors.New("invalid mesh")
	ErrNoEmissionMap = errors.New("material should have an emission map")
	ErrInvalidStep   = errors.New("sample step must be positive")
)
