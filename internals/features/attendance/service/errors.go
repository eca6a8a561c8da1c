package service

import "errors"

var (
	ErrInvalidEvent  = errors.New("event id must be a positive integer")
	ErrEventNotFound = errors.New("event not found")
	ErrNoActiveEvent = errors.New("no active event")
	ErrSyncAborted   = errors.New("attendance sync aborted")
)
