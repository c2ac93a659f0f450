package domain

import "errors"

var (
	ErrUnknownButton      = errors.New("unknown button index")
	ErrDeviceDisconnected = errors.New("device disconnected")
	ErrNoDeviceFound      = errors.New("no keypad device found")
)
