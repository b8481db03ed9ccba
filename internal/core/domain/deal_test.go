package domain_test

import (
	"testing"
	"time"

	"github.com/settleworks/closing_cost_engine/internal/apperrors"
	"github.com/settleworks/closing_cost_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDeal() domain.Deal {
	return domain.Deal{
		Property:      domain.PropertyLocation{State: "PA"},
		PurchasePrice: decimal.NewFromInt(200000),
		LoanAmount:    decimal.NewFromInt(160000),
		ClosingDate:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		Docs: domain.DocumentSet{
			DeedDocsCount: 1,
			DeedPages:     4,
		},
	}
}

func TestDealValidate_Valid(t *testing.T) {
	deal := validDeal()
	verrs := deal.Validate()
	assert.False(t, verrs.HasViolations())
	assert.NoError(t, verrs.Err())
}

func TestDealValidate_CollectsAllViolations(t *testing.T) {
	deal := domain.Deal{
		PurchasePrice: decimal.Zero,
		LoanAmount:    decimal.NewFromInt(-5),
	}

	verrs := deal.Validate()
	require.True(t, verrs.HasViolations())

	fields := violationFields(verrs)
	assert.Contains(t, fields, "property.state")
	assert.Contains(t, fields, "purchase_price")
	assert.Contains(t, fields, "loan_amount")
	assert.Contains(t, fields, "closing_date")

	err := verrs.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestDealValidate_LoanExceedsPrice(t *testing.T) {
	deal := validDeal()
	deal.LoanAmount = deal.PurchasePrice.Add(decimal.NewFromInt(1))

	verrs := deal.Validate()
	require.True(t, verrs.HasViolations())
	assert.Equal(t, []string{"loan_amount"}, violationFields(verrs))
}

func TestDealValidate_ChargeLines(t *testing.T) {
	deal := validDeal()
	deal.TaxLines = []domain.RecurringChargeLine{
		{
			Description:   "County tax",
			Amount:        decimal.NewFromInt(-100),
			PeriodStart:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			PeriodEnd:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			PaymentStatus: "maybe",
		},
	}

	verrs := deal.Validate()
	fields := violationFields(verrs)
	assert.Contains(t, fields, "tax_lines[0].amount")
	assert.Contains(t, fields, "tax_lines[0].payment_status")
	assert.Contains(t, fields, "tax_lines[0].period_end")
}

func TestDealValidate_AncillaryDocs(t *testing.T) {
	deal := validDeal()
	deal.Docs.Ancillary = []domain.AncillaryDoc{
		{DocType: "", Count: -1, Pages: -2},
	}

	verrs := deal.Validate()
	fields := violationFields(verrs)
	assert.Contains(t, fields, "docs.ancillary[0].doc_type")
	assert.Contains(t, fields, "docs.ancillary[0].count")
	assert.Contains(t, fields, "docs.ancillary[0].pages")
}

func violationFields(verrs *apperrors.ValidationErrors) []string {
	fields := make([]string, 0, len(verrs.Violations))
	for _, v := range verrs.Violations {
		fields = append(fields, v.Field)
	}
	return fields
}
