package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("Your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")

	// engine guard errors
	ErrUnknownToken       = errors.New("unknown token")
	ErrAlreadyListed      = errors.New("token already listed")
	ErrAuctionNotStarted  = errors.New("auction not started")
	ErrAuctionFinished    = errors.New("auction finished")
	ErrAuctionStillActive = errors.New("auction still active")
	ErrBidTooLow          = errors.New("bid too low")
	ErrOwnerForbidden     = errors.New("owner forbidden")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidRoyalty     = errors.New("invalid royalty")
	ErrPriceNotCovered    = errors.New("price not covered")

	// external collaborator errors
	ErrIncompatibleContract = errors.New("incompatible contract")
	ErrInsufficientFunds    = errors.New("insufficient funds")
)
