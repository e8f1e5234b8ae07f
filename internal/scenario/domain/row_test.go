package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	billingdomain "github.com/smallbiznis/planshift/internal/billing/domain"
	pricingdomain "github.com/smallbiznis/planshift/internal/pricing/domain"
	usagedomain "github.com/smallbiznis/planshift/internal/usage/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() Result {
	return Result{
		CustomerID:        "cust-1",
		CustomerName:      "Acme",
		CustomerDomain:    "acme.test",
		Segment:           pricingdomain.SegmentInHouse,
		BillingCustomerID: "cus_1",
		Spend: billingdomain.Spend{
			BaseMonthlyCents: decimal.NewFromInt(24000),
			MonthlyCents:     decimal.NewFromInt(24000),
			AnnualCents:      decimal.NewFromInt(288000),
			AppliedDiscounts: 1,
			TotalDiscounts:   2,
			Interval:         "month",
		},
		Footprint: usagedomain.Footprint{
			CreditsRequired: decimal.NewFromInt(150000),
			CreditsCapacity: decimal.NewFromInt(200000),
			UsageCount:      75000,
			UsageLimit:      100000,
			Workspaces:      1,
		},
		LeastCost: Assignment{
			PlanName:        "pro",
			Present:         true,
			OverageCredits:  decimal.Zero,
			AnnualCostCents: decimal.NewFromInt(298800),
			LeftoverCredits: decimal.NewFromInt(74100),
		},
		MatchSpend: Assignment{
			PlanName:        "starter",
			Present:         true,
			OverageCredits:  decimal.NewFromInt(90600),
			AnnualCostCents: decimal.NewFromInt(288000),
			LeftoverCredits: decimal.NewFromInt(-6000),
		},
	}
}

func TestRow(t *testing.T) {
	row := sampleResult().Row()

	require.NotNil(t, row.CustomerDomain)
	assert.Equal(t, "acme.test", *row.CustomerDomain)
	assert.Equal(t, 240.0, row.CurrentMRR)
	assert.Equal(t, 2880.0, row.CurrentARR)
	assert.Equal(t, "1 (2)", row.Discounts)
	assert.Equal(t, 150000.0, row.RequiredCredits)

	assert.Equal(t, "pro", row.LeastCostPlanName)
	assert.Equal(t, 2988.0, row.LeastCostARR)
	assert.Equal(t, 249.0, row.LeastCostMRR)
	assert.Equal(t, 108.0, row.LeastCostARRChange)
	assert.Equal(t, 9.0, row.LeastCostMRRChange)
	assert.Equal(t, 74100.0, row.LeastCostLeftoverCredits)

	require.NotNil(t, row.MatchARRPlanName)
	assert.Equal(t, "starter", *row.MatchARRPlanName)
	assert.Equal(t, 2880.0, row.MatchARR)
	assert.Equal(t, -6000.0, row.MatchARRLeftoverCredits)
}

func TestRowAbsentMatchSerializesNull(t *testing.T) {
	r := sampleResult()
	r.CustomerDomain = ""
	r.MatchSpend = Absent()

	data, err := json.Marshal(r.Row())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Nil(t, decoded["match_arr_plan_name"])
	assert.Nil(t, decoded["customer_domain"])
	assert.Equal(t, 0.0, decoded["match_arr_arr"])
	assert.Contains(t, decoded, "least_cost_surplus_credits")
}

func TestMajorRoundsToCents(t *testing.T) {
	assert.Equal(t, 1.23, Major(decimal.RequireFromString("123.4")))
	assert.Equal(t, 1.24, Major(decimal.RequireFromString("123.5")))
	assert.Equal(t, 0.0, Major(decimal.Zero))
	assert.Equal(t, 33.33, Credits(decimal.RequireFromString("33.3333")))
}

func TestRecord(t *testing.T) {
	record, err := sampleResult().Record(42, "run-1")
	require.NoError(t, err)

	assert.EqualValues(t, 42, record.ID)
	assert.Equal(t, "run-1", record.RunID)
	assert.Equal(t, "IN_HOUSE", record.Segment)
	assert.Equal(t, "pro", record.LeastCostPlan)
	require.NotNil(t, record.MatchPlan)
	assert.Equal(t, "starter", *record.MatchPlan)
	assert.True(t, record.CreditsRequired.Equal(decimal.NewFromInt(150000)))

	var row Row
	require.NoError(t, json.Unmarshal(record.Payload, &row))
	assert.Equal(t, "cust-1", row.CustomerID)

	r := sampleResult()
	r.MatchSpend = Absent()
	record, err = r.Record(43, "run-1")
	require.NoError(t, err)
	assert.Nil(t, record.MatchPlan)
}
