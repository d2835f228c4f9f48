// Package plan models the subscription plan catalog.
package plan

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

const maxNameLength = 100

// Plan is a purchasable tier. A nil nutritionPlanLimit means unlimited.
type Plan struct {
	id                 uint
	name               string
	description        string
	features           []string
	price              decimal.Decimal
	isActive           bool
	nutritionPlanLimit *int
	version            int
	createdAt          time.Time
	updatedAt          time.Time
}

// NormalizeName trims surrounding whitespace and converts to NFC so that
// visually identical names compare equal. Matching stays case-sensitive.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// NewPlan creates an active plan.
func NewPlan(name string, price decimal.Decimal, limit *int, description string, features []string) (*Plan, error) {
	p := &Plan{
		isActive: true,
		version:  1,
	}
	if err := p.apply(name, price, limit, description, features); err != nil {
		return nil, err
	}
	now := time.Now()
	p.createdAt = now
	p.updatedAt = now
	return p, nil
}

// ReconstructPlan rebuilds a plan from persistence.
func ReconstructPlan(
	id uint,
	name, description string,
	features []string,
	price decimal.Decimal,
	isActive bool,
	limit *int,
	version int,
	createdAt, updatedAt time.Time,
) (*Plan, error) {
	if id == 0 {
		return nil, fmt.Errorf("plan ID cannot be zero")
	}
	return &Plan{
		id:                 id,
		name:               name,
		description:        description,
		features:           features,
		price:              price,
		isActive:           isActive,
		nutritionPlanLimit: limit,
		version:            version,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}, nil
}

// Update replaces the editable fields. Existing subscriptions keep the
// price they were created with.
func (p *Plan) Update(name string, price decimal.Decimal, limit *int, description string, features []string) error {
	if err := p.apply(name, price, limit, description, features); err != nil {
		return err
	}
	p.updatedAt = time.Now()
	return nil
}

func (p *Plan) apply(name string, price decimal.Decimal, limit *int, description string, features []string) error {
	name = NormalizeName(name)
	if name == "" {
		return ErrInvalidName
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return ErrNameTooLong
	}
	if price.IsNegative() {
		return ErrInvalidPrice
	}
	if limit != nil && *limit < 0 {
		return ErrInvalidLimit
	}

	p.name = name
	p.price = price.Round(2)
	p.nutritionPlanLimit = copyLimit(limit)
	p.description = strings.TrimSpace(description)
	p.features = cleanFeatures(features)
	return nil
}

// Activate marks the plan purchasable. It reports whether anything changed.
func (p *Plan) Activate() bool {
	if p.isActive {
		return false
	}
	p.isActive = true
	p.updatedAt = time.Now()
	return true
}

// Deactivate hides the plan from new subscriptions. Existing subscriptions
// are untouched.
func (p *Plan) Deactivate() bool {
	if !p.isActive {
		return false
	}
	p.isActive = false
	p.updatedAt = time.Now()
	return true
}

// IsUnlimited reports whether the plan places no cap on nutrition plans.
func (p *Plan) IsUnlimited() bool {
	return p.nutritionPlanLimit == nil
}

// AllowsAnother reports whether a user currently holding current nutrition
// plans may create one more.
func (p *Plan) AllowsAnother(current int64) bool {
	if p.nutritionPlanLimit == nil {
		return true
	}
	return current < int64(*p.nutritionPlanLimit)
}

func (p *Plan) ID() uint { return p.id }
func (p *Plan) Name() string { return p.name }
func (p *Plan) Description() string { return p.description }
func (p *Plan) Price() decimal.Decimal { return p.price }
func (p *Plan) IsActive() bool { return p.isActive }
func (p *Plan) Version() int { return p.version }
func (p *Plan) CreatedAt() time.Time { return p.createdAt }
func (p *Plan) UpdatedAt() time.Time { return p.updatedAt }
func (p *Plan) NutritionPlanLimit() *int { return copyLimit(p.nutritionPlanLimit) }

func (p *Plan) Features() []string {
	out := make([]string, len(p.features))
	copy(out, p.features)
	return out
}

// SetID is called once by the repository after insert.
func (p *Plan) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("plan ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("plan ID cannot be zero")
	}
	p.id = id
	return nil
}

// IncrementVersion is called by the repository after a successful update.
func (p *Plan) IncrementVersion() {
	p.version++
}

func copyLimit(limit *int) *int {
	if limit == nil {
		return nil
	}
	v := *limit
	return &v
}

func cleanFeatures(features []string) []string {
	out := make([]string, 0, len(features))
	for _, f := range features {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
