package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/giglance/giglance_be/internal/models"
	"github.com/giglance/giglance_be/internal/services/hiring"
)

type GigStore struct {
	db *gorm.DB
}

func NewGigStore(db *gorm.DB) *GigStore {
	return &GigStore{db: db}
}

func (s *GigStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Gig, error) {
	var gig models.Gig
	err := s.db.WithContext(ctx).First(&gig, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, hiring.ErrGigNotFound
	}
	if err != nil {
		return nil, err
	}
	return &gig, nil
}

// AssignIfOpen is a conditional update; RowsAffected == 0 means the gig
// was already assigned (or gone) and the caller must treat the hire as lost.
func (s *GigStore) AssignIfOpen(ctx context.Context, id uuid.UUID) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Gig{}).
		Where("id = ? AND status = ?", id, models.GigStatusOpen).
		Update("status", models.GigStatusAssigned)

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
