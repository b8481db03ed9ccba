package services_test

import (
	"context"
	"testing"

	"github.com/settleworks/closing_cost_engine/internal/apperrors"
	"github.com/settleworks/closing_cost_engine/internal/core/domain"
	portssvc "github.com/settleworks/closing_cost_engine/internal/core/ports/services"
	"github.com/settleworks/closing_cost_engine/internal/core/services"
	"github.com/settleworks/closing_cost_engine/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type CalculationServiceTestSuite struct {
	suite.Suite
	mockRepo *MockProfileRepository
	service  portssvc.CalculationSvcFacade
}

func (suite *CalculationServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockProfileRepository)
	suite.service = services.NewCalculationService(suite.mockRepo)
}

func paProfile() *domain.JurisdictionProfile {
	return &domain.JurisdictionProfile{
		State: "PA",
		TransferTaxes: []domain.TransferTaxRule{
			{
				Name:         "State Transfer Tax",
				BaseType:     domain.BasePrice,
				CalcType:     domain.CalcPercent,
				Rate:         decPtr("1"),
				PayerDefault: domain.PayerSeller,
				Enabled:      true,
			},
			{
				Name:         "Local Transfer Tax",
				BaseType:     domain.BasePrice,
				CalcType:     domain.CalcPercent,
				Rate:         decPtr("0.5"),
				PayerDefault: domain.PayerSeller,
				Enabled:      true,
			},
		},
		RecordingFees: domain.RecordingProfile{
			Deed:     domain.RecordingFeeSchedule{PerDocumentFee: decimal.NewFromInt(50), PerPageFee: decimal.NewFromInt(2)},
			Mortgage: domain.RecordingFeeSchedule{PerDocumentFee: decimal.NewFromInt(75), PerPageFee: decimal.NewFromInt(3)},
		},
		TitleInsurance: domain.TitleProfile{
			LenderPolicyRate:          decimal.RequireFromString("0.5"),
			OwnerPolicyRate:           decimal.RequireFromString("0.6"),
			SimultaneousIssueDiscount: decimal.RequireFromString("0.25"),
		},
		SettlementFees: domain.SettlementFeesProfile{
			SettlementFee: decimal.NewFromInt(500),
		},
		Prorations: domain.ProrationProfile{
			DayCountMethod:        domain.DayCountActual365,
			ClosingDayOwner:       domain.ClosingDayBuyer,
			Rounding:              domain.RoundCents,
			DefaultProrationStyle: domain.StylePaidInAdvance,
		},
	}
}

func calcRequest() dto.CalculateDealRequest {
	return dto.CalculateDealRequest{
		Property:      dto.PropertyLocationRequest{State: "PA"},
		PurchasePrice: decimal.NewFromInt(200000),
		LoanAmount:    decimal.NewFromInt(160000),
		ClosingDate:   "2025-06-30",
		Docs: dto.DocumentSetRequest{
			DeedDocsCount:     1,
			DeedPages:         4,
			MortgageDocsCount: 1,
			MortgagePages:     20,
		},
		TaxLines: []dto.ChargeLineRequest{
			{
				Description:   "Annual property tax",
				Amount:        decimal.NewFromInt(1200),
				PeriodStart:   "2025-01-01",
				PeriodEnd:     "2026-01-01",
				PaymentStatus: "paid",
			},
		},
	}
}

// --- Test Cases ---

func (suite *CalculationServiceTestSuite) TestCalculate_Success() {
	ctx := context.Background()
	suite.mockRepo.On("FindProfileByPath", ctx, "PA").Return(paProfile(), nil).Once()

	result, err := suite.service.CalculateClosingCosts(ctx, calcRequest())

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal("PA", result.Diagnostics.JurisdictionPathMatched)

	// Seller: 3,000 transfer tax debit, 595.07 proration credit.
	suite.True(result.Seller.TotalDebits.Equal(decimal.NewFromInt(3000)), result.Seller.TotalDebits.String())
	suite.True(result.Seller.TotalCredits.Equal(decimal.RequireFromString("595.07")), result.Seller.TotalCredits.String())

	// Buyer: recording 193, lender policy 800, settlement fee 500,
	// proration reimbursement 604.93.
	suite.True(result.Buyer.TotalDebits.Equal(decimal.RequireFromString("2097.93")), result.Buyer.TotalDebits.String())
	suite.True(result.Buyer.TotalCredits.IsZero())
	suite.True(result.Buyer.Net.Equal(result.Buyer.TotalDebits))

	// Not verbose: no raw calculator details.
	suite.Nil(result.Diagnostics.Details)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CalculationServiceTestSuite) TestCalculate_Deterministic() {
	ctx := context.Background()
	suite.mockRepo.On("FindProfileByPath", ctx, "PA").Return(paProfile(), nil).Twice()

	first, err := suite.service.CalculateClosingCosts(ctx, calcRequest())
	suite.Require().NoError(err)
	second, err := suite.service.CalculateClosingCosts(ctx, calcRequest())
	suite.Require().NoError(err)

	suite.Equal(first, second)
}

func (suite *CalculationServiceTestSuite) TestCalculate_Verbose() {
	ctx := context.Background()
	suite.mockRepo.On("FindProfileByPath", ctx, "PA").Return(paProfile(), nil).Once()

	req := calcRequest()
	req.Verbose = true

	result, err := suite.service.CalculateClosingCosts(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(result.Diagnostics.Details)
	suite.True(result.Diagnostics.Details.TransferTaxes.Total.Equal(decimal.NewFromInt(3000)))
	suite.Len(result.Diagnostics.Details.Prorations.Lines, 1)
}

func (suite *CalculationServiceTestSuite) TestCalculate_ValidationAggregates() {
	ctx := context.Background()

	req := calcRequest()
	req.PurchasePrice = decimal.Zero
	req.LoanAmount = decimal.NewFromInt(160000)
	req.ClosingDate = "30/06/2025"

	result, err := suite.service.CalculateClosingCosts(ctx, req)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)

	var verrs *apperrors.ValidationErrors
	suite.Require().ErrorAs(err, &verrs)

	fields := make([]string, 0, len(verrs.Violations))
	for _, v := range verrs.Violations {
		fields = append(fields, v.Field)
	}
	suite.Contains(fields, "closing_date")
	suite.Contains(fields, "purchase_price")
	suite.Contains(fields, "loan_amount")

	// The unparseable date is reported once, not again by the required check.
	closingDateViolations := 0
	for _, f := range fields {
		if f == "closing_date" {
			closingDateViolations++
		}
	}
	suite.Equal(1, closingDateViolations)

	// The profile store is never consulted for an invalid deal.
	suite.mockRepo.AssertNotCalled(suite.T(), "FindProfileByPath", mock.Anything, mock.Anything)
}

func (suite *CalculationServiceTestSuite) TestCalculate_NoProfileMatches() {
	ctx := context.Background()
	suite.mockRepo.On("FindProfileByPath", ctx, mock.Anything).Return(nil, apperrors.ErrNotFound)

	result, err := suite.service.CalculateClosingCosts(ctx, calcRequest())

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrConfigurationNotFound)
}

func (suite *CalculationServiceTestSuite) TestCalculate_MisconfiguredProfile() {
	ctx := context.Background()
	profile := paProfile()
	profile.TransferTaxes[0].Rate = nil
	suite.mockRepo.On("FindProfileByPath", ctx, "PA").Return(profile, nil).Once()

	result, err := suite.service.CalculateClosingCosts(ctx, calcRequest())

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrInvalidConfiguration)
}

func (suite *CalculationServiceTestSuite) TestCalculate_UnknownAncillaryDocSucceeds() {
	ctx := context.Background()
	suite.mockRepo.On("FindProfileByPath", ctx, "PA").Return(paProfile(), nil).Once()

	req := calcRequest()
	req.Docs.Ancillary = []dto.AncillaryDocRequest{
		{DocType: "exotic_affidavit", Count: 1, Pages: 3},
	}
	req.Verbose = true

	result, err := suite.service.CalculateClosingCosts(ctx, req)

	suite.Require().NoError(err)
	suite.True(result.Diagnostics.Details.RecordingFees.AncillaryFees.IsZero())
}

func TestCalculationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CalculationServiceTestSuite))
}
