package services

import (
	"github.com/settleworks/closing_cost_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CalculateRecordingFees computes government recording charges for the deed,
// the mortgage and any ancillary documents. Ancillary entries whose document
// type has no configured schedule contribute zero and are skipped; unknown
// types are expected to occur and are not an error.
func CalculateRecordingFees(docs domain.DocumentSet, schedule domain.RecordingProfile) domain.RecordingFeesResult {
	deedFee := documentFee(docs.DeedDocsCount, docs.DeedPages, schedule.Deed)
	mortgageFee := documentFee(docs.MortgageDocsCount, docs.MortgagePages, schedule.Mortgage)

	breakdown := map[string]decimal.Decimal{
		"deed":     deedFee,
		"mortgage": mortgageFee,
	}

	ancillaryFees := decimal.Zero
	for _, anc := range docs.Ancillary {
		ancSchedule, ok := schedule.Ancillary[anc.DocType]
		if !ok {
			continue
		}
		fee := documentFee(anc.Count, anc.Pages, ancSchedule)
		key := "ancillary_" + anc.DocType
		breakdown[key] = breakdown[key].Add(fee)
		ancillaryFees = ancillaryFees.Add(fee)
	}

	return domain.RecordingFeesResult{
		DeedFee:       deedFee,
		MortgageFee:   mortgageFee,
		AncillaryFees: ancillaryFees,
		Total:         deedFee.Add(mortgageFee).Add(ancillaryFees),
		Breakdown:     breakdown,
	}
}

func documentFee(count, pages int, schedule domain.RecordingFeeSchedule) decimal.Decimal {
	return schedule.PerDocumentFee.Mul(decimal.NewFromInt(int64(count))).
		Add(schedule.PerPageFee.Mul(decimal.NewFromInt(int64(pages))))
}
