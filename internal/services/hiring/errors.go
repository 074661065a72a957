package hiring

import "errors"

var (
	ErrBidNotFound = errors.New("bid not found")
	ErrGigNotFound = errors.New("gig not found")
	ErrNotGigOwner = errors.New("only the gig owner can hire")
	ErrGigNotOpen  = errors.New("gig is not open")

	ErrOwnGigBid    = errors.New("cannot bid on your own gig")
	ErrEmptyMessage = errors.New("message is required")
	ErrInvalidPrice = errors.New("price must be positive")
)
