package service

import "errors"

var (
	ErrParcelNotFound      = errors.New("parcel not found")
	ErrParcelAlreadyPaid   = errors.New("parcel already paid")
	ErrPaymentIncomplete   = errors.New("payment not completed")
	ErrPaymentNotProcessed = errors.New("payment could not be processed")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidRole         = errors.New("invalid role")
)
