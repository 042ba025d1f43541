package manifest

import "errors"

var (
	ErrPlan         = errors.New("invalid plan")
	ErrRequirements = errors.New("invalid dependency manifest")
)
