package hiring

import (
	"context"

	"github.com/google/uuid"

	"github.com/giglance/giglance_be/internal/models"
)

// GigStore is the gig persistence the hire workflow needs.
type GigStore interface {
	// FindByID returns ErrGigNotFound when the gig does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*models.Gig, error)
	// AssignIfOpen atomically flips the gig from open to assigned.
	// Returns false (and no error) when the gig was not open anymore;
	// this compare-and-swap is what serializes concurrent hires.
	AssignIfOpen(ctx context.Context, id uuid.UUID) (bool, error)
}

// BidStore is the bid persistence the hire workflow needs.
type BidStore interface {
	// FindByID returns ErrBidNotFound when the bid does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*models.Bid, error)
	Create(ctx context.Context, bid *models.Bid) error
	MarkHired(ctx context.Context, id uuid.UUID) error
	// RejectSiblings moves every still-pending bid on the gig, except
	// the hired one, to rejected. Bids already hired/rejected are untouched.
	RejectSiblings(ctx context.Context, gigID, exceptBidID uuid.UUID) error
}

type Stores struct {
	Gigs GigStore
	Bids BidStore
}

// TxManager runs fn against stores bound to a single database transaction.
// An error from fn rolls the whole transaction back.
type TxManager interface {
	InTx(ctx context.Context, fn func(Stores) error) error
}

// Notifier pushes a fire-and-forget event to a user's live session.
// Delivery to an offline user is a silent no-op.
type Notifier interface {
	Push(userID uuid.UUID, event string, data interface{})
}
