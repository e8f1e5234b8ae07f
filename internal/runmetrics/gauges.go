// Package runmetrics publishes portfolio gauges for a finished run to
// Prometheus by push, since a run exits before any scrape could happen.
package runmetrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	portfoliodomain "github.com/smallbiznis/planshift/internal/portfolio/domain"
	scenariodomain "github.com/smallbiznis/planshift/internal/scenario/domain"
)

const (
	passLeastCost = "least_cost"
	passMatch     = "match_arr"
)

// Gauges holds the portfolio gauges of one run on a private registry.
type Gauges struct {
	registry *prometheus.Registry

	customers        *prometheus.GaugeVec
	currentARR       *prometheus.GaugeVec
	leastCostARR     *prometheus.GaugeVec
	deltaMean        *prometheus.GaugeVec
	deltaMedian      *prometheus.GaugeVec
	planAssignments  *prometheus.GaugeVec
	matchedCustomers prometheus.Gauge
	lastRun          prometheus.Gauge
}

func NewGauges() *Gauges {
	g := &Gauges{
		registry: prometheus.NewRegistry(),
		customers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "planshift_customers",
			Help: "Customers evaluated in the last run by segment.",
		}, []string{"segment"}),
		currentARR: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "planshift_current_arr_dollars",
			Help: "Current annual spend by segment.",
		}, []string{"segment"}),
		leastCostARR: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "planshift_least_cost_arr_dollars",
			Help: "Modeled least-cost annual revenue by segment.",
		}, []string{"segment"}),
		deltaMean: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "planshift_arr_delta_mean_dollars",
			Help: "Mean least-cost annual delta over paying customers.",
		}, []string{"segment"}),
		deltaMedian: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "planshift_arr_delta_median_dollars",
			Help: "Median least-cost annual delta over paying customers.",
		}, []string{"segment"}),
		planAssignments: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "planshift_plan_assignments",
			Help: "Customers assigned to each plan by pass.",
		}, []string{"pass", "plan"}),
		matchedCustomers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "planshift_matched_customers",
			Help: "Customers with a spend-matched plan.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "planshift_last_run_timestamp_seconds",
			Help: "Unix time of the last completed run.",
		}),
	}

	g.registry.MustRegister(
		g.customers,
		g.currentARR,
		g.leastCostARR,
		g.deltaMean,
		g.deltaMedian,
		g.planAssignments,
		g.matchedCustomers,
		g.lastRun,
	)
	return g
}

// Registry returns the registry holding the gauges.
func (g *Gauges) Registry() *prometheus.Registry {
	if g == nil {
		return nil
	}
	return g.registry
}

// Observe replaces the gauge values with the given summary.
func (g *Gauges) Observe(summary portfoliodomain.Summary, finishedAt float64) {
	if g == nil {
		return
	}
	g.customers.Reset()
	g.currentARR.Reset()
	g.leastCostARR.Reset()
	g.deltaMean.Reset()
	g.deltaMedian.Reset()
	g.planAssignments.Reset()

	g.customers.WithLabelValues("all").Set(float64(summary.Customers))
	g.currentARR.WithLabelValues("all").Set(dollars(summary.TotalCurrentCents))
	g.leastCostARR.WithLabelValues("all").Set(dollars(summary.TotalLeastCostCents))
	if summary.DeltaCents.HasData() {
		g.deltaMean.WithLabelValues("all").Set(dollars(summary.DeltaCents.Mean))
		g.deltaMedian.WithLabelValues("all").Set(dollars(summary.DeltaCents.Median))
	}

	for _, seg := range summary.Segments {
		label := normalizeLabel(seg.Segment)
		g.customers.WithLabelValues(label).Set(float64(seg.Customers))
		g.currentARR.WithLabelValues(label).Set(dollars(seg.CurrentCents))
		g.leastCostARR.WithLabelValues(label).Set(dollars(seg.LeastCostCents))
		if seg.DeltaCents.HasData() {
			g.deltaMean.WithLabelValues(label).Set(dollars(seg.DeltaCents.Mean))
			g.deltaMedian.WithLabelValues(label).Set(dollars(seg.DeltaCents.Median))
		}
	}

	for _, pc := range summary.LeastCostPlans {
		g.planAssignments.WithLabelValues(passLeastCost, normalizeLabel(pc.Plan)).Set(float64(pc.Customers))
	}
	for _, pc := range summary.MatchPlans {
		g.planAssignments.WithLabelValues(passMatch, normalizeLabel(pc.Plan)).Set(float64(pc.Customers))
	}

	g.matchedCustomers.Set(float64(summary.MatchedCustomers))
	g.lastRun.Set(finishedAt)
}

func dollars(cents decimal.Decimal) float64 {
	return scenariodomain.Major(cents)
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	return value
}
