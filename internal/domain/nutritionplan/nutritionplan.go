// Package nutritionplan is the quota-gated resource: every plan a user
// creates counts against the nutritionPlanLimit of their active plan.
package nutritionplan

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	ErrNutritionPlanNotFound = errors.New("nutrition plan not found")
	ErrInvalidTitle          = errors.New("title is required and must be at most 200 characters")
	ErrInvalidCalories       = errors.New("daily calories must be positive")
)

const maxTitleLength = 200

type NutritionPlan struct {
	id            uint
	userID        uint
	title         string
	description   string
	dailyCalories *int
	createdAt     time.Time
	updatedAt     time.Time
}

func NewNutritionPlan(userID uint, title, description string, dailyCalories *int) (*NutritionPlan, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	title = strings.TrimSpace(title)
	if title == "" || utf8.RuneCountInString(title) > maxTitleLength {
		return nil, ErrInvalidTitle
	}
	if dailyCalories != nil && *dailyCalories <= 0 {
		return nil, ErrInvalidCalories
	}

	now := time.Now()
	return &NutritionPlan{
		userID:        userID,
		title:         title,
		description:   strings.TrimSpace(description),
		dailyCalories: dailyCalories,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func ReconstructNutritionPlan(id, userID uint, title, description string, dailyCalories *int, createdAt, updatedAt time.Time) *NutritionPlan {
	return &NutritionPlan{
		id:            id,
		userID:        userID,
		title:         title,
		description:   description,
		dailyCalories: dailyCalories,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (n *NutritionPlan) ID() uint            { return n.id }
func (n *NutritionPlan) UserID() uint        { return n.userID }
func (n *NutritionPlan) Title() string       { return n.title }
func (n *NutritionPlan) Description() string { return n.description }
func (n *NutritionPlan) DailyCalories() *int { return n.dailyCalories }
func (n *NutritionPlan) CreatedAt() time.Time {
	return n.createdAt
}
func (n *NutritionPlan) UpdatedAt() time.Time {
	return n.updatedAt
}

func (n *NutritionPlan) SetID(id uint) error {
	if n.id != 0 {
		return fmt.Errorf("nutrition plan ID is already set")
	}
	n.id = id
	return nil
}

type Repository interface {
	Create(ctx context.Context, plan *NutritionPlan) error
	// GetByID returns (nil, nil) when no row matches.
	GetByID(ctx context.Context, id uint) (*NutritionPlan, error)
	ListByUser(ctx context.Context, userID uint) ([]*NutritionPlan, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	Delete(ctx context.Context, id uint) error
}
