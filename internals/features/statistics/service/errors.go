package service

import "errors"

var (
	ErrInvalidZone   = errors.New("zone id must be a positive integer")
	ErrZoneNotFound  = errors.New("zone not found")
	ErrNoActiveEvent = errors.New("no active event")
)
