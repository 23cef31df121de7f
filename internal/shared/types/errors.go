package types

import "errors"

var (
	ErrNoValidProfile   = errors.New("profile not found in AWS configuration")
	ErrInvalidTimeRange = errors.New("days must be a positive integer")
)
