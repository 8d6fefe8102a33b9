package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransportRecord is one bilty (consignment) entry. Monetary and quantity
// fields are stored as operator-entered text ("27 MT G", "FIX+RTO",
// "1,500.00"); the numeric portion is extracted on demand. Dates are kept
// in the dd-mm-yyyy display form the ledger books use.
type TransportRecord struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	SerialNo    string `gorm:"column:srno" json:"srno"`
	SMSDate     string `gorm:"column:smsdate" json:"smsdate"`
	LRDate      string `gorm:"column:lrdate" json:"lrdate"`
	BiltyNo     string `gorm:"column:biltyno;index" json:"biltyno"`
	TruckNo     string `gorm:"column:truckno;index" json:"truckno"`
	Transport   string `gorm:"column:transport;not null;index" json:"transport"`
	Destination string `gorm:"column:destination;not null" json:"destination"`

	Weight        string `gorm:"column:weight" json:"weight"`
	Rate          string `gorm:"column:rate" json:"rate"`
	Total         string `gorm:"column:total" json:"total"`
	BiltyCharge   string `gorm:"column:biltycharge" json:"biltycharge"`
	FreightAmount string `gorm:"column:freightamount" json:"freightamount"`
	Advance       string `gorm:"column:advance" json:"advance"`
	AdvanceDate   string `gorm:"column:advancedate" json:"advancedate"`
	Commission    string `gorm:"column:commission" json:"commission"`

	BalancePaidAmount string `gorm:"column:balpaidamount" json:"balpaidamount"`
	BalancePaidDate   string `gorm:"column:balpaiddate" json:"balpaiddate"`
	NetAmount         string `gorm:"column:netamount" json:"netamount"`
	IsBalPaid         string `gorm:"column:isbalpaid;default:NO;index" json:"isbalpaid"`

	DateOfReach        string `gorm:"column:dateofreach" json:"dateofreach"`
	DateOfUnload       string `gorm:"column:dateofunload" json:"dateofunload"`
	DayInHold          string `gorm:"column:dayinhold" json:"dayinhold"`
	HoldingCharge      string `gorm:"column:holdingcharge" json:"holdingcharge"`
	TotalHoldingAmount string `gorm:"column:totalholdingamount" json:"totalholdingamount"`
	CourierDate        string `gorm:"column:courierdate" json:"courierdate"`

	// Running total of lump-sum money applied to this record. Unlike the
	// text fields above this is machine-written only, so it stays numeric.
	LumpSumAllocatedAmount float64 `gorm:"column:lump_sum_allocated_amount;type:decimal(15,2);default:0" json:"lump_sum_allocated_amount"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for TransportRecord
func (TransportRecord) TableName() string {
	return "transport_records"
}

// BeforeCreate assigns a UUID when the store has not been given one.
func (r *TransportRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// Balance settlement states for IsBalPaid
const (
	BalancePaid    = "YES"
	BalancePending = "NO"
)

// IsPaid returns true if the record's balance has been settled
func (r *TransportRecord) IsPaid() bool {
	return r.IsBalPaid == BalancePaid
}

// MaySettle returns true if the record can be marked settled
func (r *TransportRecord) MaySettle() bool {
	return !r.IsPaid()
}

// MayReopen returns true if a settled record can be reopened for correction
func (r *TransportRecord) MayReopen() bool {
	return r.IsPaid()
}

// TransportRecordResponse is the JSON response format for records
type TransportRecordResponse struct {
	ID                     string    `json:"id"`
	SerialNo               string    `json:"srno"`
	SMSDate                string    `json:"smsdate"`
	LRDate                 string    `json:"lrdate"`
	BiltyNo                string    `json:"biltyno"`
	TruckNo                string    `json:"truckno"`
	Transport              string    `json:"transport"`
	Destination            string    `json:"destination"`
	Weight                 string    `json:"weight"`
	Rate                   string    `json:"rate"`
	Total                  string    `json:"total"`
	BiltyCharge            string    `json:"biltycharge"`
	FreightAmount          string    `json:"freightamount"`
	Advance                string    `json:"advance"`
	AdvanceDate            string    `json:"advancedate"`
	Commission             string    `json:"commission"`
	BalancePaidAmount      string    `json:"balpaidamount"`
	BalancePaidDate        string    `json:"balpaiddate"`
	NetAmount              string    `json:"netamount"`
	IsBalPaid              string    `json:"isbalpaid"`
	DateOfReach            string    `json:"dateofreach"`
	DateOfUnload           string    `json:"dateofunload"`
	DayInHold              string    `json:"dayinhold"`
	HoldingCharge          string    `json:"holdingcharge"`
	TotalHoldingAmount     string    `json:"totalholdingamount"`
	CourierDate            string    `json:"courierdate"`
	LumpSumAllocatedAmount float64   `json:"lump_sum_allocated_amount"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// ToResponse converts TransportRecord to TransportRecordResponse
func (r *TransportRecord) ToResponse() TransportRecordResponse {
	return TransportRecordResponse{
		ID:                     r.ID,
		SerialNo:               r.SerialNo,
		SMSDate:                r.SMSDate,
		LRDate:                 r.LRDate,
		BiltyNo:                r.BiltyNo,
		TruckNo:                r.TruckNo,
		Transport:              r.Transport,
		Destination:            r.Destination,
		Weight:                 r.Weight,
		Rate:                   r.Rate,
		Total:                  r.Total,
		BiltyCharge:            r.BiltyCharge,
		FreightAmount:          r.FreightAmount,
		Advance:                r.Advance,
		AdvanceDate:            r.AdvanceDate,
		Commission:             r.Commission,
		BalancePaidAmount:      r.BalancePaidAmount,
		BalancePaidDate:        r.BalancePaidDate,
		NetAmount:              r.NetAmount,
		IsBalPaid:              r.IsBalPaid,
		DateOfReach:            r.DateOfReach,
		DateOfUnload:           r.DateOfUnload,
		DayInHold:              r.DayInHold,
		HoldingCharge:          r.HoldingCharge,
		TotalHoldingAmount:     r.TotalHoldingAmount,
		CourierDate:            r.CourierDate,
		LumpSumAllocatedAmount: r.LumpSumAllocatedAmount,
		CreatedAt:              r.CreatedAt,
		UpdatedAt:              r.UpdatedAt,
	}
}
