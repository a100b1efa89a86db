package timesheet

import "github.com/shopspring/decimal"

var (
	ot15Multiplier = decimal.NewFromFloat(1.5)
	ot2Multiplier  = decimal.NewFromInt(2)
	hundred        = decimal.NewFromInt(100)
)

// Breakdown itemizes every term of the service charge so reports can
// show the full audit trail, not just the grand total.
type Breakdown struct {
	Hours    HoursSummary
	ToolDays int

	ServiceHoursCost   decimal.Decimal
	ReportPrepCost     decimal.Decimal
	ToolUsageCost      decimal.Decimal
	TravelCost         decimal.Decimal
	OffshoreCost       decimal.Decimal
	EmergencyCost      decimal.Decimal
	OtherTransportCost decimal.Decimal

	Subtotal   decimal.Decimal
	VATAmount  decimal.Decimal
	Discount   decimal.Decimal
	GrandTotal decimal.Decimal
}

// ComputeCharge derives the full billable breakdown for an entry.
//
// VAT applies to the pre-discount subtotal; the discount comes off after
// VAT and the grand total is clamped at zero.
func ComputeCharge(e *Entry) Breakdown {
	hours := AggregateHours(e.TimeEntries)
	toolDays := TotalToolDays(e.ToolUsage)

	serviceRate := decimal.NewFromFloat(e.ServiceHourRate)

	b := Breakdown{
		Hours:    hours,
		ToolDays: toolDays,
	}

	b.ServiceHoursCost = decimal.NewFromFloat(hours.Regular).Mul(serviceRate).
		Add(decimal.NewFromFloat(hours.OT15).Mul(serviceRate).Mul(ot15Multiplier)).
		Add(decimal.NewFromFloat(hours.OT2).Mul(serviceRate).Mul(ot2Multiplier))

	b.ReportPrepCost = decimal.NewFromFloat(e.ReportHours).Mul(serviceRate)

	b.ToolUsageCost = decimal.NewFromInt(int64(toolDays)).
		Mul(decimal.NewFromFloat(e.ToolUsageRate))

	b.TravelCost = decimal.NewFromInt(int64(hours.TravelShortDays)).
		Mul(decimal.NewFromFloat(e.TravelRateShort)).
		Add(decimal.NewFromInt(int64(hours.TravelLongDays)).
			Mul(decimal.NewFromFloat(e.TravelRateLong)))

	b.OffshoreCost = decimal.NewFromInt(int64(hours.OffshoreDays)).
		Mul(decimal.NewFromFloat(e.OffshoreDayRate))

	if e.EmergencyRequest {
		b.EmergencyCost = decimal.NewFromFloat(e.EmergencyRate)
	}

	b.OtherTransportCost = decimal.NewFromFloat(e.OtherTransportCharge)

	b.Subtotal = b.ServiceHoursCost.
		Add(b.ReportPrepCost).
		Add(b.ToolUsageCost).
		Add(b.TravelCost).
		Add(b.OffshoreCost).
		Add(b.EmergencyCost).
		Add(b.OtherTransportCost)

	b.VATAmount = b.Subtotal.Mul(decimal.NewFromFloat(e.VATPercent)).Div(hundred)
	b.Discount = decimal.NewFromFloat(e.DiscountAmount)

	b.GrandTotal = b.Subtotal.Add(b.VATAmount).Sub(b.Discount)
	if b.GrandTotal.IsNegative() {
		b.GrandTotal = decimal.Zero
	}

	return b
}
