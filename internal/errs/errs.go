// Package errs provides common errors thrown in the app that are expected to be caught upstream
package errs

import "errors"

var ErrProfileNotFound = errors.New("profile not found")
