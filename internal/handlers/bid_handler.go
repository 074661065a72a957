package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/giglance/giglance_be/internal/models"
	"github.com/giglance/giglance_be/internal/services/hiring"
)

type BidHandler struct {
	DB      *gorm.DB
	Service *hiring.Service
}

func NewBidHandler(db *gorm.DB, service *hiring.Service) *BidHandler {
	return &BidHandler{DB: db, Service: service}
}

type SubmitBidRequest struct {
	GigID   string `json:"gig_id"`
	Message string `json:"message"`
	Price   int64  `json:"price"`
}

type BidResponse struct {
	ID           string    `json:"id"`
	GigID        string    `json:"gig_id"`
	FreelancerID string    `json:"freelancer_id"`
	Message      string    `json:"message"`
	Price        int64     `json:"price"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`

	Freelancer *UserMini `json:"freelancer,omitempty"`
}

func toBidResponse(bid *models.Bid) BidResponse {
	resp := BidResponse{
		ID:           bid.ID.String(),
		GigID:        bid.GigID.String(),
		FreelancerID: bid.FreelancerID.String(),
		Message:      bid.Message,
		Price:        bid.Price,
		Status:       string(bid.Status),
		CreatedAt:    bid.CreatedAt,
	}

	if bid.Freelancer != nil {
		resp.Freelancer = &UserMini{
			ID:    bid.Freelancer.ID.String(),
			Name:  bid.Freelancer.Name,
			Email: bid.Freelancer.Email,
		}
	}

	return resp
}

// Submit creates a pending bid on an open gig.
func (h *BidHandler) Submit(c *fiber.Ctx) error {
	userUUID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{
			"success": false,
			"message": "Unauthorized",
		})
	}

	var req SubmitBidRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	gigUUID, err := uuid.Parse(req.GigID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Invalid gig ID",
		})
	}

	bid, err := h.Service.SubmitBid(c.Context(), userUUID, gigUUID, req.Message, req.Price)
	if err != nil {
		switch {
		case errors.Is(err, hiring.ErrEmptyMessage),
			errors.Is(err, hiring.ErrInvalidPrice),
			errors.Is(err, hiring.ErrOwnGigBid),
			errors.Is(err, hiring.ErrGigNotOpen):
			return c.Status(400).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		case errors.Is(err, hiring.ErrGigNotFound):
			return c.Status(404).JSON(fiber.Map{
				"success": false,
				"message": "Gig not found",
			})
		default:
			log.Println("Error submitting bid:", err)
			return c.Status(500).JSON(fiber.Map{
				"success": false,
				"message": "Failed to submit bid",
			})
		}
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"data":    toBidResponse(bid),
	})
}

// ListForGig returns the bids on a gig. Only the gig owner may look.
func (h *BidHandler) ListForGig(c *fiber.Ctx) error {
	userUUID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{
			"success": false,
			"message": "Unauthorized",
		})
	}

	gigID := c.Params("gigId")
	gigUUID, err := uuid.Parse(gigID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Invalid gig ID",
		})
	}

	var gig models.Gig
	if err := h.DB.First(&gig, "id = ?", gigUUID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"message": "Gig not found",
		})
	}

	if gig.OwnerID != userUUID {
		return c.Status(403).JSON(fiber.Map{
			"success": false,
			"message": "Not authorized to view bids",
		})
	}

	var bids []models.Bid
	if err := h.DB.
		Preload("Freelancer").
		Where("gig_id = ?", gigUUID).
		Order("created_at DESC").
		Find(&bids).Error; err != nil {
		log.Println("Error fetching bids:", err)
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Failed to fetch bids",
		})
	}

	out := make([]BidResponse, 0, len(bids))
	for i := range bids {
		out = append(out, toBidResponse(&bids[i]))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    out,
	})
}

// Hire accepts a bid: the gig closes, the bid is hired, sibling pending
// bids are rejected and the freelancer gets a realtime notification.
func (h *BidHandler) Hire(c *fiber.Ctx) error {
	userUUID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{
			"success": false,
			"message": "Unauthorized",
		})
	}

	bidID := c.Params("bidId")
	bidUUID, err := uuid.Parse(bidID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Invalid bid ID",
		})
	}

	if err := h.Service.Hire(c.Context(), userUUID, bidUUID); err != nil {
		switch {
		case errors.Is(err, hiring.ErrBidNotFound):
			return c.Status(404).JSON(fiber.Map{
				"success": false,
				"message": "Bid not found",
			})
		case errors.Is(err, hiring.ErrGigNotFound):
			return c.Status(404).JSON(fiber.Map{
				"success": false,
				"message": "Gig not found",
			})
		case errors.Is(err, hiring.ErrNotGigOwner):
			return c.Status(403).JSON(fiber.Map{
				"success": false,
				"message": "Not authorized to hire",
			})
		case errors.Is(err, hiring.ErrGigNotOpen):
			return c.Status(400).JSON(fiber.Map{
				"success": false,
				"message": "Gig is not open",
			})
		default:
			log.Println("Hire error:", err)
			return c.Status(500).JSON(fiber.Map{
				"success": false,
				"message": "Server error during hire process",
			})
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Freelancer hired successfully",
	})
}
