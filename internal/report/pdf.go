package report

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	portfoliodomain "github.com/smallbiznis/planshift/internal/portfolio/domain"
	portfolioservice "github.com/smallbiznis/planshift/internal/portfolio/service"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Meta identifies the run a report was produced by.
type Meta struct {
	Label          string
	RunID          string
	Source         string
	CatalogVersion string
	GeneratedAt    time.Time
}

var (
	headerText = props.Text{Style: fontstyle.Bold, Size: 9}
	cellText   = props.Text{Size: 9}
	numberText = props.Text{Size: 9, Align: align.Right}
)

// PortfolioPDF renders the portfolio summary as a PDF document.
func PortfolioPDF(meta Meta, summary portfoliodomain.Summary) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)
	p := message.NewPrinter(language.English)

	m.AddRow(12,
		text.NewCol(12, "Pricing migration report", props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)
	m.AddRow(22,
		col.New(8).Add(
			text.New("Run: "+meta.Label, props.Text{Top: 0}),
			text.New("Run id: "+meta.RunID, props.Text{Top: 5}),
			text.New("Snapshot: "+meta.Source, props.Text{Top: 10}),
			text.New("Catalog version: "+meta.CatalogVersion, props.Text{Top: 15}),
		),
		text.NewCol(4, meta.GeneratedAt.UTC().Format(time.RFC3339), props.Text{Align: align.Right}),
	)

	section(m, "Totals")
	keyValue(m, "Customers evaluated", p.Sprintf("%d", summary.Customers))
	keyValue(m, "Customers with current spend", p.Sprintf("%d", summary.PayingCustomers))
	keyValue(m, "Current ARR", portfolioservice.Money(p, summary.TotalCurrentCents))
	keyValue(m, "Least-cost ARR", portfolioservice.Money(p, summary.TotalLeastCostCents))
	keyValue(m, "ARR change", portfolioservice.Money(p, summary.TotalDeltaCents))
	keyValue(m, "ARR change per paying customer", portfolioservice.StatText(p, summary.DeltaCents, true))
	keyValue(m, "Spend-matched customers", p.Sprintf("%d", summary.MatchedCustomers))
	keyValue(m, "Spend-matched leftover credits", portfolioservice.StatText(p, summary.MatchLeftoverCredits, false))

	section(m, "By segment")
	m.AddRow(8,
		text.NewCol(3, "Segment", headerText),
		text.NewCol(2, "Customers", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Current ARR", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Least-cost ARR", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(3, "Median change", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	for _, seg := range summary.Segments {
		median := "no data"
		if seg.DeltaCents.HasData() {
			median = portfolioservice.Money(p, seg.DeltaCents.Median)
		}
		m.AddRow(7,
			text.NewCol(3, seg.Segment, cellText),
			text.NewCol(2, p.Sprintf("%d", seg.Customers), numberText),
			text.NewCol(2, portfolioservice.Money(p, seg.CurrentCents), numberText),
			text.NewCol(2, portfolioservice.Money(p, seg.LeastCostCents), numberText),
			text.NewCol(3, median, numberText),
		)
	}

	section(m, "Least-cost plans")
	distribution(m, summary.LeastCostPlans)
	section(m, "Spend-matched plans")
	distribution(m, summary.MatchPlans)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func section(m core.Maroto, title string) {
	m.AddRow(12,
		text.NewCol(12, title, props.Text{Size: 12, Style: fontstyle.Bold, Top: 4}),
	)
}

func keyValue(m core.Maroto, key, value string) {
	m.AddRow(6,
		text.NewCol(6, key, cellText),
		text.NewCol(6, value, numberText),
	)
}

func distribution(m core.Maroto, plans []portfoliodomain.PlanCount) {
	if len(plans) == 0 {
		m.AddRow(6, text.NewCol(12, "no data", cellText))
		return
	}
	for _, pc := range plans {
		m.AddRow(6,
			text.NewCol(6, pc.Plan, cellText),
			text.NewCol(6, fmt.Sprintf("%d", pc.Customers), numberText),
		)
	}
}
