package handlers

import (
	"errors"
	"fmt"
)

var errUnauthenticated = errors.New("authentication required")

func errInvalidID(name string) error {
	return fmt.Errorf("%s must be a uuid", name)
}
