package store

import (
	"fmt"

	"github.com/jozefizso/jwsetkit/joseerr"
)

func errMalformed(cause error) error {
	if cause == nil {
		return joseerr.ErrMalformedInput
	}
	return fmt.Errorf("%w: %v", joseerr.ErrMalformedInput, cause)
}
