package services_test

import (
	"testing"

	"github.com/settleworks/closing_cost_engine/internal/core/domain"
	"github.com/settleworks/closing_cost_engine/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeSettlementFees(t *testing.T) {
	base := domain.SettlementFeesProfile{
		SettlementFee: decimal.NewFromInt(500),
		AttorneyFee:   decimal.NewFromInt(800),
		Notary:        decimal.NewFromInt(25),
	}

	merged := services.MergeSettlementFees(base, nil)
	assert.Equal(t, base, merged)

	override := decimal.NewFromInt(650)
	zero := decimal.Zero
	merged = services.MergeSettlementFees(base, &domain.FlatFeeOverrides{
		SettlementFee: &override,
		AttorneyFee:   &zero,
	})

	assert.True(t, merged.SettlementFee.Equal(decimal.NewFromInt(650)))
	// An explicit zero override removes the fee.
	assert.True(t, merged.AttorneyFee.IsZero())
	// Untouched fields keep the profile value.
	assert.True(t, merged.Notary.Equal(decimal.NewFromInt(25)))
}

func TestBuildSettlementStatement_SellerPaidTax(t *testing.T) {
	tax := domain.TransferTaxResult{
		Items: []domain.TaxRuleResult{
			{Name: "State Transfer Tax", Amount: decimal.NewFromInt(2000), PayerDefault: domain.PayerSeller},
			{Name: "Local Transfer Tax", Amount: decimal.NewFromInt(1000), PayerDefault: domain.PayerSeller},
		},
		Total: decimal.NewFromInt(3000),
	}

	result := services.BuildSettlementStatement(tax, domain.RecordingFeesResult{}, domain.TitleInsuranceResult{}, domain.ProrationResult{}, domain.SettlementFeesProfile{}, domain.BuyerSelections{})

	require.Len(t, result.Seller.Debits, 2)
	assert.Empty(t, result.Buyer.Debits)
	assert.True(t, result.Seller.TotalDebits.Equal(decimal.NewFromInt(3000)))
	assert.True(t, result.Seller.Net.Equal(decimal.NewFromInt(3000)))
	assert.True(t, result.Buyer.Net.IsZero())

	require.Len(t, result.LineItemsByCategory, 1)
	group := result.LineItemsByCategory[0]
	assert.Equal(t, domain.CategoryTransferTaxes, group.Category)
	assert.True(t, group.Subtotal.Equal(decimal.NewFromInt(3000)))
}

func TestBuildSettlementStatement_SplitTax(t *testing.T) {
	tax := domain.TransferTaxResult{
		Items: []domain.TaxRuleResult{
			{
				Name:           "Shared Transfer Tax",
				Amount:         decimal.NewFromInt(1000),
				PayerDefault:   domain.PayerSplit,
				SplitBuyerPct:  decPtr("50"),
				SplitSellerPct: decPtr("50"),
			},
		},
	}

	result := services.BuildSettlementStatement(tax, domain.RecordingFeesResult{}, domain.TitleInsuranceResult{}, domain.ProrationResult{}, domain.SettlementFeesProfile{}, domain.BuyerSelections{})

	require.Len(t, result.Buyer.Debits, 1)
	require.Len(t, result.Seller.Debits, 1)
	assert.True(t, result.Buyer.Debits[0].Amount.Equal(decimal.NewFromInt(500)))
	assert.True(t, result.Seller.Debits[0].Amount.Equal(decimal.NewFromInt(500)))
}

func TestBuildSettlementStatement_RecordingAndFees(t *testing.T) {
	recording := domain.RecordingFeesResult{
		DeedFee:       decimal.NewFromInt(58),
		MortgageFee:   decimal.NewFromInt(135),
		AncillaryFees: decimal.Zero,
	}
	fees := domain.SettlementFeesProfile{
		SettlementFee: decimal.NewFromInt(500),
		TitleSearch:   decimal.NewFromInt(150),
	}

	result := services.BuildSettlementStatement(domain.TransferTaxResult{}, recording, domain.TitleInsuranceResult{}, domain.ProrationResult{}, fees, domain.BuyerSelections{})

	// Zero ancillary fee produces no line item.
	require.Len(t, result.Buyer.Debits, 4)
	assert.True(t, result.Buyer.TotalDebits.Equal(decimal.NewFromInt(843)))
	assert.Empty(t, result.Seller.Debits)

	descriptions := make([]string, 0, len(result.Buyer.Debits))
	for _, item := range result.Buyer.Debits {
		descriptions = append(descriptions, item.Description)
	}
	assert.Equal(t, []string{"Deed Recording", "Mortgage Recording", "Settlement Fee", "Title Search"}, descriptions)
}

func TestBuildSettlementStatement_OwnerPolicyAllocation(t *testing.T) {
	title := domain.TitleInsuranceResult{
		LenderPremium: decimal.NewFromInt(600),
		OwnerPremium:  decimal.NewFromInt(900),
	}

	// Default: the seller pays for the owner policy as a credit entry.
	result := services.BuildSettlementStatement(domain.TransferTaxResult{}, domain.RecordingFeesResult{}, title, domain.ProrationResult{}, domain.SettlementFeesProfile{}, domain.BuyerSelections{})

	require.Len(t, result.Seller.Credits, 1)
	assert.Equal(t, "Owner Title Policy", result.Seller.Credits[0].Description)
	assert.True(t, result.Seller.Net.Equal(decimal.NewFromInt(-900)))
	require.Len(t, result.Buyer.Debits, 1)
	assert.Equal(t, "Lender Title Policy", result.Buyer.Debits[0].Description)

	// Explicit buyer-pays flag flips it to a buyer debit.
	result = services.BuildSettlementStatement(domain.TransferTaxResult{}, domain.RecordingFeesResult{}, title, domain.ProrationResult{}, domain.SettlementFeesProfile{}, domain.BuyerSelections{OwnerPolicyPaidByBuyer: true})

	assert.Empty(t, result.Seller.Credits)
	require.Len(t, result.Buyer.Debits, 2)
	assert.True(t, result.Buyer.TotalDebits.Equal(decimal.NewFromInt(1500)))
}

func TestBuildSettlementStatement_ProrationDirections(t *testing.T) {
	prorations := domain.ProrationResult{
		Lines: []domain.ProratedLine{
			{
				Description:    "Annual property tax",
				BuyerShare:     decimal.RequireFromString("595.07"),
				SellerShare:    decimal.RequireFromString("604.93"),
				BuyerIsDebited: true,
			},
			{
				Description:     "HOA dues",
				BuyerShare:      decimal.NewFromInt(40),
				SellerShare:     decimal.NewFromInt(60),
				SellerIsDebited: true,
			},
		},
	}

	result := services.BuildSettlementStatement(domain.TransferTaxResult{}, domain.RecordingFeesResult{}, domain.TitleInsuranceResult{}, prorations, domain.SettlementFeesProfile{}, domain.BuyerSelections{})

	// Paid in advance: buyer reimburses the seller's remaining share, the
	// seller is credited the pre-closing share.
	require.Len(t, result.Buyer.Debits, 1)
	assert.True(t, result.Buyer.Debits[0].Amount.Equal(decimal.RequireFromString("604.93")))
	require.Len(t, result.Seller.Credits, 1)
	assert.True(t, result.Seller.Credits[0].Amount.Equal(decimal.RequireFromString("595.07")))

	// In arrears: the seller is debited their own share, handed to the buyer.
	require.Len(t, result.Seller.Debits, 1)
	assert.True(t, result.Seller.Debits[0].Amount.Equal(decimal.NewFromInt(60)))
	require.Len(t, result.Buyer.Credits, 1)
	assert.True(t, result.Buyer.Credits[0].Amount.Equal(decimal.NewFromInt(60)))

	// Nets: buyer 604.93 - 60, seller 60 - 595.07
	assert.True(t, result.Buyer.Net.Equal(decimal.RequireFromString("544.93")), result.Buyer.Net.String())
	assert.True(t, result.Seller.Net.Equal(decimal.RequireFromString("-535.07")), result.Seller.Net.String())

	require.Len(t, result.LineItemsByCategory, 1)
	assert.Equal(t, domain.CategoryProrations, result.LineItemsByCategory[0].Category)
	assert.Len(t, result.LineItemsByCategory[0].Items, 4)
}

func TestBuildSettlementStatement_CategoryOrder(t *testing.T) {
	tax := domain.TransferTaxResult{
		Items: []domain.TaxRuleResult{{Name: "Tax", Amount: decimal.NewFromInt(100), PayerDefault: domain.PayerBuyer}},
	}
	recording := domain.RecordingFeesResult{DeedFee: decimal.NewFromInt(50)}
	title := domain.TitleInsuranceResult{LenderPremium: decimal.NewFromInt(600)}
	fees := domain.SettlementFeesProfile{SettlementFee: decimal.NewFromInt(500)}
	prorations := domain.ProrationResult{
		Lines: []domain.ProratedLine{{Description: "Tax proration", BuyerShare: decimal.NewFromInt(10), SellerShare: decimal.NewFromInt(20), BuyerIsDebited: true}},
	}

	result := services.BuildSettlementStatement(tax, recording, title, prorations, fees, domain.BuyerSelections{})

	categories := make([]domain.Category, 0, len(result.LineItemsByCategory))
	for _, g := range result.LineItemsByCategory {
		categories = append(categories, g.Category)
	}
	assert.Equal(t, []domain.Category{
		domain.CategoryTransferTaxes,
		domain.CategoryRecordingFees,
		domain.CategoryTitleInsurance,
		domain.CategorySettlementFees,
		domain.CategoryProrations,
	}, categories)
}
