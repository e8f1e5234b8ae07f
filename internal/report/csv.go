package report

import (
	"encoding/csv"
	"io"
	"strconv"

	scenariodomain "github.com/smallbiznis/planshift/internal/scenario/domain"
)

var csvHeader = []string{
	"customer_id",
	"customer_name",
	"customer_domain",
	"segment",
	"billing_customer_id",
	"current_mrr",
	"current_arr",
	"discount",
	"discounts",
	"interval",
	"workspaces",
	"workspaces_high_frequency",
	"total_usage",
	"total_usage_capacity",
	"required_credits",
	"credits_capacity",
	"least_cost_plan_name",
	"least_cost_arr",
	"least_cost_mrr",
	"least_cost_arr_change",
	"least_cost_mrr_change",
	"least_cost_extra_credits_purchased",
	"least_cost_surplus_credits",
	"match_arr_plan_name",
	"match_arr_arr",
	"match_arr_extra_credits_purchased",
	"match_arr_surplus_credits",
}

// CSVHeader returns the CSV column names, matching the JSON field names.
func CSVHeader() []string {
	return append([]string(nil), csvHeader...)
}

// CSVRecord renders one row in CSV column order. Absent values are empty.
func CSVRecord(row scenariodomain.Row) []string {
	return []string{
		row.CustomerID,
		row.CustomerName,
		optional(row.CustomerDomain),
		row.Segment,
		row.BillingCustomerID,
		amount(row.CurrentMRR),
		amount(row.CurrentARR),
		strconv.FormatInt(row.Discount, 10),
		row.Discounts,
		row.Interval,
		strconv.Itoa(row.Workspaces),
		strconv.Itoa(row.HighFrequencyWorkspaces),
		strconv.FormatInt(row.TotalUsage, 10),
		strconv.FormatInt(row.TotalUsageCapacity, 10),
		amount(row.RequiredCredits),
		amount(row.CreditsCapacity),
		row.LeastCostPlanName,
		amount(row.LeastCostARR),
		amount(row.LeastCostMRR),
		amount(row.LeastCostARRChange),
		amount(row.LeastCostMRRChange),
		amount(row.LeastCostExtraCredits),
		amount(row.LeastCostLeftoverCredits),
		optional(row.MatchARRPlanName),
		amount(row.MatchARR),
		amount(row.MatchARRExtraCredits),
		amount(row.MatchARRLeftoverCredits),
	}
}

// WriteCSV writes a header line followed by one record per row.
func WriteCSV(w io.Writer, rows []scenariodomain.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(CSVRecord(row)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func optional(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
