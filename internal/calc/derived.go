package calc

import (
	"strconv"
	"strings"

	"github.com/sahyog/freightbook-api/internal/models"
)

// RateMode says whether a record's total is computed from weight x rate or
// entered by hand. Operators mark negotiated flat rates by writing "FIX"
// somewhere in the rate field ("FIX", "FIX+RTO", "fix 18000").
type RateMode int

const (
	// RateModeComputed derives total from the numeric weight and rate.
	RateModeComputed RateMode = iota
	// RateModeFixed keeps whatever total the operator typed.
	RateModeFixed
)

const fixedRateMarker = "FIX"

// RateModeOf classifies a rate field's text.
func RateModeOf(rate string) RateMode {
	if strings.Contains(strings.ToUpper(rate), fixedRateMarker) {
		return RateModeFixed
	}
	return RateModeComputed
}

// Recompute derives every dependent field of a record from its raw inputs,
// in dependency order. It is pure over the record snapshot: running it again
// on its own output changes nothing, and malformed numeric text degrades to
// 0 rather than failing.
//
// Derivation order:
//  1. total        (skipped in fixed-rate mode, or when weight/rate not yet positive)
//  2. freight      = total - bilty charge
//  3. days in hold = (lr date -> date of reach) + (date of reach -> date of unload)
//  4. holding      = days in hold x holding charge per day
//  5. net          = freight - balance paid - commission - advance - lump sum allocated
func Recompute(r *models.TransportRecord) {
	if RateModeOf(r.Rate) == RateModeComputed {
		weight := ParseAmount(r.Weight)
		rate := ParseAmount(r.Rate)
		// Leave total untouched while either operand is non-positive so a
		// half-typed weight does not clobber a corrected value.
		if weight > 0 && rate > 0 {
			r.Total = FormatAmount(weight * rate)
		}
	}

	r.FreightAmount = FormatAmount(ParseAmount(r.Total) - ParseAmount(r.BiltyCharge))

	// The hold count is only derived once delivery dates start arriving;
	// until then the operator's own figure stands.
	if r.LRDate != "" || r.DateOfReach != "" || r.DateOfUnload != "" {
		days := DaysBetween(ToISO(r.LRDate), ToISO(r.DateOfReach)) +
			DaysBetween(ToISO(r.DateOfReach), ToISO(r.DateOfUnload))
		r.DayInHold = strconv.Itoa(days)
	}

	daysInHold := ParseAmount(r.DayInHold)
	chargePerDay := ParseAmount(r.HoldingCharge)
	if daysInHold > 0 && chargePerDay > 0 {
		r.TotalHoldingAmount = FormatAmount(daysInHold * chargePerDay)
	} else {
		r.TotalHoldingAmount = FormatAmount(0)
	}

	net := ParseAmount(r.FreightAmount) -
		ParseAmount(r.BalancePaidAmount) -
		ParseAmount(r.Commission) -
		ParseAmount(r.Advance) -
		r.LumpSumAllocatedAmount
	r.NetAmount = FormatAmount(net)
}

// Outstanding is the amount still owed on a record: net minus whatever has
// already been paid against the balance.
func Outstanding(r *models.TransportRecord) float64 {
	return ParseAmount(r.NetAmount) - ParseAmount(r.BalancePaidAmount)
}
