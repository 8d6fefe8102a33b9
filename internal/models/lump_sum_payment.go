package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LumpSumPayment is a bulk payment received for a transport company, to be
// distributed across several outstanding records. Amount is the original
// figure and never changes; RemainingBalance is drawn down as allocations
// are processed.
type LumpSumPayment struct {
	ID               string    `gorm:"primaryKey;type:uuid" json:"id"`
	CompanyName      string    `gorm:"column:company_name;not null;index" json:"company_name"`
	Amount           float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	RemainingBalance float64   `gorm:"column:remaining_balance;type:decimal(15,2);not null" json:"remaining_balance"`
	DateReceived     string    `gorm:"column:date_received" json:"date_received"`
	Notes            string    `gorm:"type:text" json:"notes"`
	CreatedAt        time.Time `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// Associations
	Allocations []PaymentAllocation `gorm:"foreignKey:LumpSumPaymentID" json:"allocations,omitempty"`
}

// TableName specifies the table name for LumpSumPayment
func (LumpSumPayment) TableName() string {
	return "lump_sum_payments"
}

// BeforeCreate assigns a UUID and seeds the remaining balance from the
// original amount when the caller has not set it.
func (p *LumpSumPayment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.RemainingBalance == 0 && p.Amount > 0 {
		p.RemainingBalance = p.Amount
	}
	return nil
}

// FullyAllocated returns true when nothing is left to distribute
func (p *LumpSumPayment) FullyAllocated() bool {
	return p.RemainingBalance <= 0
}

// AllocatedAmount returns how much of the payment has been distributed
func (p *LumpSumPayment) AllocatedAmount() float64 {
	return p.Amount - p.RemainingBalance
}

// LumpSumPaymentResponse is the JSON response format for lump sum payments
type LumpSumPaymentResponse struct {
	ID               string                      `json:"id"`
	CompanyName      string                      `json:"company_name"`
	Amount           float64                     `json:"amount"`
	RemainingBalance float64                     `json:"remaining_balance"`
	AllocatedAmount  float64                     `json:"allocated_amount"`
	FullyAllocated   bool                        `json:"fully_allocated"`
	DateReceived     string                      `json:"date_received"`
	Notes            string                      `json:"notes"`
	CreatedAt        time.Time                   `json:"created_at"`
	Allocations      []PaymentAllocationResponse `json:"allocations,omitempty"`
}

// ToResponse converts LumpSumPayment to LumpSumPaymentResponse
func (p *LumpSumPayment) ToResponse() LumpSumPaymentResponse {
	resp := LumpSumPaymentResponse{
		ID:               p.ID,
		CompanyName:      p.CompanyName,
		Amount:           p.Amount,
		RemainingBalance: p.RemainingBalance,
		AllocatedAmount:  p.AllocatedAmount(),
		FullyAllocated:   p.FullyAllocated(),
		DateReceived:     p.DateReceived,
		Notes:            p.Notes,
		CreatedAt:        p.CreatedAt,
	}
	for i := range p.Allocations {
		resp.Allocations = append(resp.Allocations, p.Allocations[i].ToResponse())
	}
	return resp
}
