package iot

import "errors"

var (
	ErrEmptyInput        = errors.New("device id is empty")
	ErrNotFound          = errors.New("turbine not found")
	ErrAlreadyRegistered = errors.New("device already registered")
	ErrStorageFailure    = errors.New("local storage failure")
	ErrRemoteFailure     = errors.New("remote store failure")
	ErrNotRegistered     = errors.New("device not registered")
)
