package main

import (
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/planshift/internal/config"
	pricingdomain "github.com/smallbiznis/planshift/internal/pricing/domain"
	scenariodomain "github.com/smallbiznis/planshift/internal/scenario/domain"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var centsPerDollar = decimal.NewFromInt(100)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the effective plan catalog with annual figures",
	RunE: func(cmd *cobra.Command, args []string) error {
		var holder *config.CatalogHolder
		return withApp(cmd.Context(), cfg, false, func() error {
			return printCatalog(cmd.OutOrStdout(), holder.Source(), holder.Get())
		}, &holder)
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

func printCatalog(w io.Writer, source string, catalogs *pricingdomain.Catalogs) error {
	p := message.NewPrinter(language.English)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	p.Fprintf(tw, "catalog %s (%s)\n\n", catalogs.Version, source)
	p.Fprintf(tw, "SEGMENT\tPLAN\tMONTHLY\tCREDITS/MO\tANNUAL\tCREDITS/YR\tPER CREDIT\tMAX WORKSPACES\n")
	for _, catalog := range catalogs.All() {
		for _, tier := range catalog.Tiers {
			workspaces := "-"
			if tier.MaxWorkspaces > 0 {
				workspaces = p.Sprintf("%d", tier.MaxWorkspaces)
			}
			p.Fprintf(tw, "%s\t%s\t$%.2f\t%d\t$%.2f\t%d\t$%.4f\t%s\n",
				catalog.Segment,
				tier.Name,
				scenariodomain.Major(decimal.NewFromInt(tier.MonthlyPriceCents)),
				tier.MonthlyCredits,
				scenariodomain.Major(tier.AnnualPriceCents()),
				tier.AnnualCredits().IntPart(),
				tier.PricePerCredit().Div(centsPerDollar).InexactFloat64(),
				workspaces,
			)
		}
	}

	p.Fprintf(tw, "\nCAPABILITY\tCREDITS\n")
	for _, name := range catalogs.Capabilities.Names() {
		p.Fprintf(tw, "%s\t%s\n", name, catalogs.Capabilities[name].String())
	}
	return tw.Flush()
}
