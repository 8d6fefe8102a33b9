package calc

import (
	"testing"

	"github.com/sahyog/freightbook-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestRateModeOf(t *testing.T) {
	assert.Equal(t, RateModeComputed, RateModeOf("500"))
	assert.Equal(t, RateModeComputed, RateModeOf(""))
	assert.Equal(t, RateModeFixed, RateModeOf("FIX"))
	assert.Equal(t, RateModeFixed, RateModeOf("fix 18000"))
	assert.Equal(t, RateModeFixed, RateModeOf("FIX+RTO"))
}

func TestRecomputeChain(t *testing.T) {
	r := &models.TransportRecord{
		Weight:      "20",
		Rate:        "500",
		BiltyCharge: "500",
		Advance:     "1000",
		Commission:  "200",
	}

	Recompute(r)

	assert.Equal(t, "10000.00", r.Total)
	assert.Equal(t, "9500.00", r.FreightAmount)
	assert.Equal(t, "8300.00", r.NetAmount)
}

func TestRecomputeFixedRateKeepsTotal(t *testing.T) {
	r := &models.TransportRecord{
		Weight: "20",
		Rate:   "FIX",
		Total:  "18000",
	}

	Recompute(r)

	assert.Equal(t, "18000", r.Total)
	assert.Equal(t, "18000.00", r.FreightAmount)
}

func TestRecomputeSkipsTotalWhenOperandMissing(t *testing.T) {
	r := &models.TransportRecord{
		Weight: "0",
		Rate:   "500",
		Total:  "7500",
	}

	Recompute(r)

	// A half-typed weight must not clobber the existing total
	assert.Equal(t, "7500", r.Total)
}

func TestRecomputeDaysInHold(t *testing.T) {
	r := &models.TransportRecord{
		LRDate:        "01-01-2024",
		DateOfReach:   "04-01-2024",
		DateOfUnload:  "06-01-2024",
		HoldingCharge: "100",
	}

	Recompute(r)

	assert.Equal(t, "5", r.DayInHold)
	assert.Equal(t, "500.00", r.TotalHoldingAmount)
}

func TestRecomputeHoldingZeroWithoutCharge(t *testing.T) {
	r := &models.TransportRecord{
		DayInHold: "3",
	}

	Recompute(r)

	assert.Equal(t, "0.00", r.TotalHoldingAmount)
}

func TestRecomputeKeepsOperatorDayInHold(t *testing.T) {
	// No delivery dates at all: the operator's figure stands
	r := &models.TransportRecord{
		DayInHold:     "3",
		HoldingCharge: "100",
	}

	Recompute(r)

	assert.Equal(t, "3", r.DayInHold)
	assert.Equal(t, "300.00", r.TotalHoldingAmount)
}

func TestRecomputeSubtractsLumpSumAllocations(t *testing.T) {
	r := &models.TransportRecord{
		Weight:                 "10",
		Rate:                   "1000",
		LumpSumAllocatedAmount: 2500,
	}

	Recompute(r)

	assert.Equal(t, "7500.00", r.NetAmount)
}

func TestRecomputeIdempotent(t *testing.T) {
	r := &models.TransportRecord{
		Weight:            "20",
		Rate:              "500",
		BiltyCharge:       "500",
		Advance:           "1000",
		Commission:        "200",
		BalancePaidAmount: "3000",
		LRDate:            "01-01-2024",
		DateOfReach:       "04-01-2024",
		HoldingCharge:     "100",
	}

	Recompute(r)
	first := *r
	Recompute(r)

	assert.Equal(t, first, *r)
}

func TestOutstanding(t *testing.T) {
	r := &models.TransportRecord{
		NetAmount:         "8300.00",
		BalancePaidAmount: "3000",
	}
	assert.Equal(t, 5300.0, Outstanding(r))

	r.BalancePaidAmount = ""
	assert.Equal(t, 8300.0, Outstanding(r))
}
