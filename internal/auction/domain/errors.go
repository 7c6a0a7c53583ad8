package domain

import "errors"

var (
	ErrAuctionNotFound        = errors.New("auction not found")
	ErrAuctionNotActive       = errors.New("auction is not active")
	ErrBidTooLow              = errors.New("bid amount must be higher than current price")
	ErrIncrementTooSmall      = errors.New("bid increment is below the auction minimum")
	ErrInvalidAmount          = errors.New("bid amount must be greater than zero")
	ErrInvalidPrice           = errors.New("starting price cannot be negative")
	ErrInvalidItemName        = errors.New("item name is required")
	ErrInvalidIncrement       = errors.New("minimum bid increment cannot be negative")
	ErrInvalidTimeRange       = errors.New("end time must be after start time")
	ErrAlreadyFinished        = errors.New("auction is already ended or cancelled")
	ErrNotAuctionOwner        = errors.New("only the auction creator may do this")
	ErrConcurrentModification = errors.New("auction was modified concurrently")
)
