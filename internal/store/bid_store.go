package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/giglance/giglance_be/internal/models"
	"github.com/giglance/giglance_be/internal/services/hiring"
)

type BidStore struct {
	db *gorm.DB
}

func NewBidStore(db *gorm.DB) *BidStore {
	return &BidStore{db: db}
}

func (s *BidStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Bid, error) {
	var bid models.Bid
	err := s.db.WithContext(ctx).First(&bid, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, hiring.ErrBidNotFound
	}
	if err != nil {
		return nil, err
	}
	return &bid, nil
}

func (s *BidStore) Create(ctx context.Context, bid *models.Bid) error {
	return s.db.WithContext(ctx).Create(bid).Error
}

func (s *BidStore) MarkHired(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).
		Model(&models.Bid{}).
		Where("id = ?", id).
		Update("status", models.BidStatusHired).Error
}

func (s *BidStore) RejectSiblings(ctx context.Context, gigID, exceptBidID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Model(&models.Bid{}).
		Where("gig_id = ? AND id <> ? AND status = ?", gigID, exceptBidID, models.BidStatusPending).
		Update("status", models.BidStatusRejected).Error
}
