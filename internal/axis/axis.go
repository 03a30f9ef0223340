// Package axis defines the closed enumerations a build request is made of:
// target platform, build configuration, linkage and host OS. Everything else
// in the argument-synthesis engine is derived from these.
package axis

import "errors"

var ErrInvalidValue = errors.New("invalid axis value")
