package services

import (
	"fmt"
	"time"

	"github.com/settleworks/closing_cost_engine/internal/apperrors"
	"github.com/settleworks/closing_cost_engine/internal/core/domain"
	"github.com/settleworks/closing_cost_engine/internal/utils/dates"
	"github.com/settleworks/closing_cost_engine/internal/utils/money"
	"github.com/shopspring/decimal"
)

// CalculateProrations splits every recurring charge between buyer and seller
// by ownership days within the billing period, under the profile's day-count
// convention, and assigns the HUD debit/credit treatment from the line's
// payment status.
func CalculateProrations(lines []domain.RecurringChargeLine, profile domain.ProrationProfile) (domain.ProrationResult, error) {
	result := domain.ProrationResult{
		Lines:         []domain.ProratedLine{},
		TotalProrated: decimal.Zero,
	}

	for i, line := range lines {
		prorated, err := prorateLine(line, profile)
		if err != nil {
			return domain.ProrationResult{}, fmt.Errorf("proration line %d (%s): %w", i, line.Description, err)
		}
		result.Lines = append(result.Lines, prorated)
		result.TotalProrated = result.TotalProrated.Add(prorated.BuyerShare).Add(prorated.SellerShare)
	}

	return result, nil
}

func prorateLine(line domain.RecurringChargeLine, profile domain.ProrationProfile) (domain.ProratedLine, error) {
	daysInPeriod := periodDays(line.PeriodStart, line.PeriodEnd, profile.DayCountMethod)
	if daysInPeriod <= 0 {
		return domain.ProratedLine{}, fmt.Errorf("%w: billing period spans zero days under the %s convention",
			apperrors.ErrValidation, profile.DayCountMethod)
	}

	dailyRate := line.Amount.Div(decimal.NewFromInt(daysInPeriod))
	daysToClosing := periodDays(line.PeriodStart, line.ClosingDate, profile.DayCountMethod)

	// A closing outside the billing period clamps to its edges so neither
	// share can exceed the bill or go negative.
	buyerDays := daysToClosing
	if profile.ClosingDayOwner == domain.ClosingDayBuyer {
		buyerDays++
	}
	if buyerDays < 0 {
		buyerDays = 0
	}
	if buyerDays > daysInPeriod {
		buyerDays = daysInPeriod
	}
	sellerDays := daysInPeriod - buyerDays

	// Rounding happens only here, at the final step. The seller share is the
	// remainder of the original amount so the two shares always sum exactly.
	buyerShare := money.Round(dailyRate.Mul(decimal.NewFromInt(buyerDays)), profile.Rounding)
	sellerShare := line.Amount.Sub(buyerShare)

	buyerIsDebited, sellerIsDebited := hudTreatment(line.PaymentStatus, profile.DefaultProrationStyle)

	return domain.ProratedLine{
		Description:     line.Description,
		OriginalAmount:  line.Amount,
		DaysInPeriod:    daysInPeriod,
		BuyerDays:       buyerDays,
		SellerDays:      sellerDays,
		DailyRate:       dailyRate,
		BuyerShare:      buyerShare,
		SellerShare:     sellerShare,
		BuyerIsDebited:  buyerIsDebited,
		SellerIsDebited: sellerIsDebited,
	}, nil
}

// hudTreatment decides the settlement-statement direction of a prorated
// charge. Seller paid in advance: the buyer reimburses the seller (buyer
// debit, seller credit). Bill in arrears: the seller hands their share to
// the buyer who will pay later (seller debit, buyer credit). Unknown status
// resolves through the profile's default proration style.
func hudTreatment(status domain.PaymentStatus, style domain.ProrationStyle) (buyerIsDebited, sellerIsDebited bool) {
	switch status {
	case domain.PaymentStatusPaid:
		return true, false
	case domain.PaymentStatusUnpaid:
		return false, true
	default:
		if style == domain.StyleArrears {
			return false, true
		}
		return true, false
	}
}

// periodDays counts days between two dates under a day-count convention.
// The 360-day conventions affect only the rate base elsewhere; actual/360
// still counts actual calendar days here.
func periodDays(start, end time.Time, method domain.DayCountMethod) int64 {
	if method == domain.DayCount30360 {
		return dates.Days30360(start, end)
	}
	return dates.DaysBetween(start, end)
}
