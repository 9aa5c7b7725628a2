package referenceframe

import "github.com/pkg/errors"

// NewIncorrectDimensionError returns an error indicating a configuration has the wrong number of
// coordinates.
func NewIncorrectDimensionError(actual, expected int) error {
	return errors.Errorf("number of coordinates given (%d) does not match number of dimensions (%d)", actual, expected)
}

// NewEmptyConfigurationError returns an error indicating a zero-dimensional configuration.
func NewEmptyConfigurationError(name string) error {
	return errors.Errorf("%s configuration has no coordinates", name)
}

// NewInvalidLimitError returns an error indicating a limit whose minimum exceeds its maximum.
func NewInvalidLimitError(dim int, lim Limit) error {
	return errors.Errorf("limit for dimension %d has min %f greater than max %f", dim, lim.Min, lim.Max)
}
