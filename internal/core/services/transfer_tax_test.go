package services_test

import (
	"testing"
	"time"

	"github.com/settleworks/closing_cost_engine/internal/apperrors"
	"github.com/settleworks/closing_cost_engine/internal/core/domain"
	"github.com/settleworks/closing_cost_engine/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decPtr(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}

func testDeal(price, loan int64) *domain.Deal {
	return &domain.Deal{
		Property:      domain.PropertyLocation{State: "PA"},
		PurchasePrice: decimal.NewFromInt(price),
		LoanAmount:    decimal.NewFromInt(loan),
		ClosingDate:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	}
}

func TestCalculateTransferTaxes_PercentRules(t *testing.T) {
	// Pennsylvania-style stack: 1% state + 0.5% local, both on the price.
	profile := &domain.JurisdictionProfile{
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
	}

	result, err := services.CalculateTransferTaxes(testDeal(200000, 160000), profile)
	require.NoError(t, err)

	require.Len(t, result.Items, 2)
	assert.True(t, result.Items[0].Amount.Equal(decimal.NewFromInt(2000)), result.Items[0].Amount.String())
	assert.True(t, result.Items[1].Amount.Equal(decimal.NewFromInt(1000)), result.Items[1].Amount.String())
	assert.True(t, result.Total.Equal(decimal.NewFromInt(3000)), result.Total.String())
	assert.Equal(t, domain.PayerSeller, result.Items[0].PayerDefault)
}

func TestCalculateTransferTaxes_DisabledRulesSkipped(t *testing.T) {
	profile := &domain.JurisdictionProfile{
		State: "PA",
		TransferTaxes: []domain.TransferTaxRule{
			{
				Name:         "Suspended Tax",
				BaseType:     domain.BasePrice,
				CalcType:     domain.CalcPercent,
				Rate:         decPtr("1"),
				PayerDefault: domain.PayerBuyer,
				Enabled:      false,
			},
		},
	}

	result, err := services.CalculateTransferTaxes(testDeal(200000, 0), profile)
	require.NoError(t, err)
	assert.Empty(t, result.Items)
	assert.True(t, result.Total.IsZero())
}

func TestCalculateTransferTaxes_MortgageBase(t *testing.T) {
	profile := &domain.JurisdictionProfile{
		State: "NY",
		TransferTaxes: []domain.TransferTaxRule{
			{
				Name:         "Mortgage Recording Tax",
				BaseType:     domain.BaseMortgage,
				CalcType:     domain.CalcPercent,
				Rate:         decPtr("2"),
				PayerDefault: domain.PayerBuyer,
				Enabled:      true,
			},
		},
	}

	result, err := services.CalculateTransferTaxes(testDeal(500000, 400000), profile)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.True(t, result.Items[0].BaseAmount.Equal(decimal.NewFromInt(400000)))
	assert.True(t, result.Items[0].Amount.Equal(decimal.NewFromInt(8000)), result.Items[0].Amount.String())
}

func TestCalculateTransferTaxes_TieredBrackets(t *testing.T) {
	profile := &domain.JurisdictionProfile{
		State: "NY",
		TransferTaxes: []domain.TransferTaxRule{
			{
				Name:     "Graduated Transfer Tax",
				BaseType: domain.BasePrice,
				CalcType: domain.CalcTieredBrackets,
				Brackets: []domain.Bracket{
					{MinInclusive: decimal.Zero, MaxInclusive: decPtr("100000"), Rate: decimal.RequireFromString("0.5")},
					{MinInclusive: decimal.NewFromInt(100000), MaxInclusive: decPtr("500000"), Rate: decimal.NewFromInt(1)},
				},
				PayerDefault: domain.PayerBuyer,
				Enabled:      true,
			},
		},
	}

	// 0.5% on the first 100k plus 1% on the next 200k.
	result, err := services.CalculateTransferTaxes(testDeal(300000, 0), profile)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.True(t, result.Items[0].Amount.Equal(decimal.NewFromInt(2500)), result.Items[0].Amount.String())

	// Base above every bounded bracket, last bracket unbounded.
	profile.TransferTaxes[0].Brackets = append(profile.TransferTaxes[0].Brackets,
		domain.Bracket{MinInclusive: decimal.NewFromInt(500000), MaxInclusive: nil, Rate: decimal.NewFromInt(2)})
	result, err = services.CalculateTransferTaxes(testDeal(700000, 0), profile)
	require.NoError(t, err)
	// 500 + 4000 + 4000
	assert.True(t, result.Items[0].Amount.Equal(decimal.NewFromInt(8500)), result.Items[0].Amount.String())
}

func TestCalculateTransferTaxes_BracketBoundaryContinuity(t *testing.T) {
	profile := &domain.JurisdictionProfile{
		State: "NY",
		TransferTaxes: []domain.TransferTaxRule{
			{
				Name:     "Graduated Transfer Tax",
				BaseType: domain.BasePrice,
				CalcType: domain.CalcTieredBrackets,
				Brackets: []domain.Bracket{
					{MinInclusive: decimal.Zero, MaxInclusive: decPtr("100000"), Rate: decimal.RequireFromString("0.5")},
					{MinInclusive: decimal.NewFromInt(100000), MaxInclusive: nil, Rate: decimal.NewFromInt(1)},
				},
				PayerDefault: domain.PayerBuyer,
				Enabled:      true,
			},
		},
	}

	// A base exactly at the bracket boundary is taxed once at the lower rate:
	// the full 100k at 0.5% and nothing from the upper bracket.
	result, err := services.CalculateTransferTaxes(testDeal(100000, 0), profile)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.True(t, result.Items[0].Amount.Equal(decimal.NewFromInt(500)), result.Items[0].Amount.String())

	// One dollar over the boundary adds exactly one dollar's worth of the
	// upper rate, so the schedule has no gap and no double count.
	result, err = services.CalculateTransferTaxes(testDeal(100001, 0), profile)
	require.NoError(t, err)
	assert.True(t, result.Items[0].Amount.Equal(decimal.RequireFromString("500.01")), result.Items[0].Amount.String())
}

func TestCalculateTransferTaxes_MisconfiguredRules(t *testing.T) {
	cases := []struct {
		name string
		rule domain.TransferTaxRule
	}{
		{"percent without rate", domain.TransferTaxRule{Name: "r", BaseType: domain.BasePrice, CalcType: domain.CalcPercent, PayerDefault: domain.PayerBuyer, Enabled: true}},
		{"flat without amount", domain.TransferTaxRule{Name: "r", BaseType: domain.BasePrice, CalcType: domain.CalcFlat, PayerDefault: domain.PayerBuyer, Enabled: true}},
		{"tiered without brackets", domain.TransferTaxRule{Name: "r", BaseType: domain.BasePrice, CalcType: domain.CalcTieredBrackets, PayerDefault: domain.PayerBuyer, Enabled: true}},
		{"unknown base type", domain.TransferTaxRule{Name: "r", BaseType: "equity", CalcType: domain.CalcPercent, Rate: decPtr("1"), PayerDefault: domain.PayerBuyer, Enabled: true}},
		{"unknown calc type", domain.TransferTaxRule{Name: "r", BaseType: domain.BasePrice, CalcType: "mystery", PayerDefault: domain.PayerBuyer, Enabled: true}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			profile := &domain.JurisdictionProfile{State: "PA", TransferTaxes: []domain.TransferTaxRule{tc.rule}}
			_, err := services.CalculateTransferTaxes(testDeal(200000, 0), profile)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidConfiguration)
		})
	}
}
