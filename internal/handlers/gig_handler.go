package handlers

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/giglance/giglance_be/internal/models"
)

type GigHandler struct {
	DB *gorm.DB
}

func NewGigHandler(db *gorm.DB) *GigHandler {
	return &GigHandler{DB: db}
}

type CreateGigRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Budget      int64    `json:"budget"`
	Tags        []string `json:"tags"`
}

type GigResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Budget      int64     `json:"budget"`
	Tags        []string  `json:"tags"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`

	Owner *UserMini `json:"owner,omitempty"`
}

type UserMini struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

func toGigResponse(gig *models.Gig) GigResponse {
	resp := GigResponse{
		ID:          gig.ID.String(),
		Title:       gig.Title,
		Description: gig.Description,
		Budget:      gig.Budget,
		Status:      string(gig.Status),
		CreatedAt:   gig.CreatedAt,
	}

	if len(gig.Tags) > 0 {
		_ = json.Unmarshal(gig.Tags, &resp.Tags)
	}

	if gig.Owner != nil {
		resp.Owner = &UserMini{
			ID:    gig.Owner.ID.String(),
			Name:  gig.Owner.Name,
			Email: gig.Owner.Email,
		}
	}

	return resp
}

// ListOpen returns open gigs, optionally filtered by title, newest first.
// Hard cap of 20 rows; there is no pagination on this endpoint.
func (h *GigHandler) ListOpen(c *fiber.Ctx) error {
	search := strings.TrimSpace(c.Query("search"))

	q := h.DB.
		Preload("Owner").
		Where("status = ?", models.GigStatusOpen)

	if search != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var gigs []models.Gig
	if err := q.
		Order("created_at DESC").
		Limit(20).
		Find(&gigs).Error; err != nil {
		log.Println("Error fetching gigs:", err)
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Failed to fetch gigs",
		})
	}

	out := make([]GigResponse, 0, len(gigs))
	for i := range gigs {
		out = append(out, toGigResponse(&gigs[i]))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    out,
	})
}

// Create posts a new gig owned by the authenticated user.
func (h *GigHandler) Create(c *fiber.Ctx) error {
	userUUID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{
			"success": false,
			"message": "Unauthorized",
		})
	}

	var req CreateGigRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)

	errors := FieldErrors{}
	if title == "" {
		errors.Add("title", "Title is required")
	}
	if description == "" {
		errors.Add("description", "Description is required")
	}
	if req.Budget <= 0 {
		errors.Add("budget", "Budget must be positive")
	}
	if len(errors) > 0 {
		return validationFail(c, errors)
	}

	var tags datatypes.JSON
	if len(req.Tags) > 0 {
		b, err := json.Marshal(req.Tags)
		if err == nil {
			tags = datatypes.JSON(b)
		}
	}

	gig := models.Gig{
		OwnerID:     userUUID,
		Title:       title,
		Description: description,
		Budget:      req.Budget,
		Tags:        tags,
		Status:      models.GigStatusOpen,
	}

	if err := h.DB.Create(&gig).Error; err != nil {
		log.Println("Error creating gig:", err)
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Failed to create gig",
		})
	}

	h.DB.Preload("Owner").First(&gig, "id = ?", gig.ID)

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"data":    toGigResponse(&gig),
	})
}

// GetDetail returns a single gig with its owner.
func (h *GigHandler) GetDetail(c *fiber.Ctx) error {
	gigID := c.Params("id")
	gigUUID, err := uuid.Parse(gigID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Invalid gig ID",
		})
	}

	var gig models.Gig
	if err := h.DB.Preload("Owner").First(&gig, "id = ?", gigUUID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"message": "Gig not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    toGigResponse(&gig),
	})
}
