package hiring

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/giglance/giglance_be/internal/models"
)

// EventHired is the event name pushed to the hired freelancer's session.
const EventHired = "hiredNotification"

// HiredNotification is the payload of an EventHired push.
type HiredNotification struct {
	Message string `json:"message"`
	GigID   string `json:"gigId"`
}

// Service owns the gig/bid state transitions: bid submission and the
// hire workflow that closes a gig, accepts one bid and rejects the rest.
type Service struct {
	stores   Stores
	tx       TxManager
	notifier Notifier
}

func NewService(stores Stores, tx TxManager, notifier Notifier) *Service {
	return &Service{stores: stores, tx: tx, notifier: notifier}
}

// Hire accepts the bid on behalf of actingUserID.
//
// Precondition failures map to the sentinel errors in errors.go, checked in
// order: missing bid, missing gig, wrong actor, gig no longer open. On
// success the gig is assigned, the bid hired and every sibling pending bid
// rejected in one transaction; the first write inside the transaction is a
// compare-and-swap on the gig status, so of two concurrent hires on the
// same gig exactly one commits and the other gets ErrGigNotOpen.
func (s *Service) Hire(ctx context.Context, actingUserID, bidID uuid.UUID) error {
	bid, err := s.stores.Bids.FindByID(ctx, bidID)
	if err != nil {
		return err
	}

	gig, err := s.stores.Gigs.FindByID(ctx, bid.GigID)
	if err != nil {
		return err
	}

	if gig.OwnerID != actingUserID {
		return ErrNotGigOwner
	}

	if gig.Status != models.GigStatusOpen {
		return ErrGigNotOpen
	}

	err = s.tx.InTx(ctx, func(st Stores) error {
		ok, err := st.Gigs.AssignIfOpen(ctx, gig.ID)
		if err != nil {
			return err
		}
		if !ok {
			// someone else hired between our read and this write
			return ErrGigNotOpen
		}

		if err := st.Bids.MarkHired(ctx, bid.ID); err != nil {
			return err
		}

		return st.Bids.RejectSiblings(ctx, gig.ID, bid.ID)
	})
	if err != nil {
		return err
	}

	// best effort, at most once: if the freelancer is offline the event is
	// simply dropped, and a delivery problem never fails the hire itself
	s.notifier.Push(bid.FreelancerID, EventHired, HiredNotification{
		Message: fmt.Sprintf("You have been hired for %q!", gig.Title),
		GigID:   gig.ID.String(),
	})
	log.Printf("Gig %s assigned to freelancer %s (bid %s)", gig.ID, bid.FreelancerID, bid.ID)

	return nil
}

// SubmitBid validates and creates a pending bid for an open gig.
// A candidate may submit more than one bid on the same gig.
func (s *Service) SubmitBid(ctx context.Context, candidateUserID, gigID uuid.UUID, message string, price int64) (*models.Bid, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}
	if price <= 0 {
		return nil, ErrInvalidPrice
	}

	gig, err := s.stores.Gigs.FindByID(ctx, gigID)
	if err != nil {
		return nil, err
	}
	if gig.Status != models.GigStatusOpen {
		return nil, ErrGigNotOpen
	}
	if gig.OwnerID == candidateUserID {
		return nil, ErrOwnGigBid
	}

	bid := &models.Bid{
		GigID:        gigID,
		FreelancerID: candidateUserID,
		Message:      message,
		Price:        price,
		Status:       models.BidStatusPending,
	}
	if err := s.stores.Bids.Create(ctx, bid); err != nil {
		return nil, err
	}

	return bid, nil
}
