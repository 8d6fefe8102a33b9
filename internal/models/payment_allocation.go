package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentAllocation records one lump-sum payment's contribution to one
// transport record. TransportRecordID is a non-owning reference: deleting a
// record leaves its allocation rows in place as audit history.
type PaymentAllocation struct {
	ID                string    `gorm:"primaryKey;type:uuid" json:"id"`
	LumpSumPaymentID  string    `gorm:"column:lump_sum_payment_id;type:uuid;not null;index" json:"lump_sum_payment_id"`
	TransportRecordID string    `gorm:"column:transport_record_id;type:uuid;not null;index" json:"transport_record_id"`
	AllocatedAmount   float64   `gorm:"column:allocated_amount;type:decimal(15,2);not null" json:"allocated_amount"`
	AllocationDate    string    `gorm:"column:allocation_date" json:"allocation_date"`
	CreatedAt         time.Time `json:"created_at"`

	// Associations
	LumpSumPayment  *LumpSumPayment  `gorm:"foreignKey:LumpSumPaymentID" json:"-"`
	TransportRecord *TransportRecord `gorm:"foreignKey:TransportRecordID" json:"transport_record,omitempty"`
}

// TableName specifies the table name for PaymentAllocation
func (PaymentAllocation) TableName() string {
	return "payment_allocations"
}

// BeforeCreate assigns a UUID when the store has not been given one.
func (a *PaymentAllocation) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// PaymentAllocationResponse is the JSON response format for allocations,
// carrying a few record fields so lists can be rendered without a second
// lookup.
type PaymentAllocationResponse struct {
	ID                string    `json:"id"`
	LumpSumPaymentID  string    `json:"lump_sum_payment_id"`
	TransportRecordID string    `json:"transport_record_id"`
	AllocatedAmount   float64   `json:"allocated_amount"`
	AllocationDate    string    `json:"allocation_date"`
	CreatedAt         time.Time `json:"created_at"`

	RecordSerialNo  string `json:"record_srno,omitempty"`
	RecordTruckNo   string `json:"record_truckno,omitempty"`
	RecordTransport string `json:"record_transport,omitempty"`
	RecordDest      string `json:"record_destination,omitempty"`
	RecordTotal     string `json:"record_total,omitempty"`
}

// ToResponse converts PaymentAllocation to PaymentAllocationResponse
func (a *PaymentAllocation) ToResponse() PaymentAllocationResponse {
	resp := PaymentAllocationResponse{
		ID:                a.ID,
		LumpSumPaymentID:  a.LumpSumPaymentID,
		TransportRecordID: a.TransportRecordID,
		AllocatedAmount:   a.AllocatedAmount,
		AllocationDate:    a.AllocationDate,
		CreatedAt:         a.CreatedAt,
	}
	if a.TransportRecord != nil {
		resp.RecordSerialNo = a.TransportRecord.SerialNo
		resp.RecordTruckNo = a.TransportRecord.TruckNo
		resp.RecordTransport = a.TransportRecord.Transport
		resp.RecordDest = a.TransportRecord.Destination
		resp.RecordTotal = a.TransportRecord.Total
	}
	return resp
}
