package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/httpsniic/sistema-cmc-server/config"
	"github.com/httpsniic/sistema-cmc-server/internal/application/usecase/dashboard"
	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
	domainerror "github.com/httpsniic/sistema-cmc-server/internal/domain/error"
	"github.com/httpsniic/sistema-cmc-server/internal/domain/metrics"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/cache"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/persistence"
)

type reportCmd struct {
	cfg     *config.Config
	open    Opener
	storeID string
	period  string
}

// NewReportCmd prints the dashboard of one store and period.
func NewReportCmd(cfg *config.Config, open Opener) *cobra.Command {
	rc := &reportCmd{cfg: cfg, open: open}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the CMC report of a store for one period",
		Args:  cobra.NoArgs,
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.storeID, "store", "", "Store ID (e.g. paris6)")
	cmd.Flags().StringVar(&rc.period, "period", "", "Period as month-year (e.g. 3-2025)")

	_ = cmd.MarkFlagRequired("store")
	_ = cmd.MarkFlagRequired("period")

	return cmd
}

func (rc *reportCmd) run(cmd *cobra.Command, _ []string) error {
	store, ok := entity.FindStore(rc.storeID)
	if !ok {
		return domainerror.NewStoreError(domainerror.ErrCodeStoreNotFound, fmt.Sprintf("unknown store %q", rc.storeID), domainerror.ErrStoreNotFound)
	}

	return withDB(cmd, rc.open, func(ctx context.Context, gdb *gorm.DB) error {
		uc := dashboard.NewGetDashboardUseCase(
			persistence.NewRecordRepository(gdb),
			persistence.NewGroupRepository(gdb),
			persistence.NewGoalRepository(gdb),
			cache.NoopMetricsCache{},
			rc.cfg.Metrics.CostTargetPercent,
		)
		out, err := uc.Execute(ctx, dashboard.GetDashboardInput{StoreID: store.ID, Period: rc.period})
		if err != nil {
			return err
		}
		return writeReport(cmd.OutOrStdout(), store, out)
	})
}

func writeReport(w io.Writer, store entity.Store, out *dashboard.GetDashboardOutput) error {
	m := out.Metrics
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Loja:\t%s (%s)\n", store.Name, store.ID)
	fmt.Fprintf(tw, "Período:\t%s\n", out.Period.Key())
	fmt.Fprintf(tw, "Faturamento:\t%s\n", metrics.FormatCurrency(m.TotalRevenue))
	fmt.Fprintf(tw, "Compras:\t%s\n", metrics.FormatCurrency(m.TotalPurchases))
	fmt.Fprintf(tw, "CMC:\t%s\n", metrics.FormatPercent(m.CurrentCostRatio))
	fmt.Fprintf(tw, "Meta:\t%s (%s, %s)\n", metrics.FormatPercent(out.TargetPercent), out.TargetSource, out.Target.Status)
	fmt.Fprintf(tw, "Dias com movimento:\t%d\n", m.DaysWithActivity)
	fmt.Fprintf(tw, "Dias restantes:\t%d\n", out.DaysRemainingDisplay)
	fmt.Fprintf(tw, "Média diária:\t%s\n", metrics.FormatCurrency(m.AverageDailyRevenue))
	fmt.Fprintf(tw, "Projeção:\t%s\n", metrics.FormatCurrency(m.ProjectedRevenue))

	if len(out.Groups) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "GRUPO\tCOMPRAS\tCMC\tMETA\t")
		for _, g := range out.Groups {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n",
				g.Name,
				metrics.FormatCurrency(g.TotalPurchases),
				metrics.FormatPercent(g.CostRatio),
				metrics.FormatPercent(g.TargetPercent),
			)
		}
	}

	if len(out.RunningTotals) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "DATA\tDIA\tFATURAMENTO\tCOMPRAS\tCMC DIA\tCMC ACUM.\t")
		for _, rt := range out.RunningTotals {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
				rt.Date.Format(entity.RecordDateLayout),
				rt.WeekdayLabel,
				metrics.FormatCurrency(rt.Revenue),
				metrics.FormatCurrency(rt.PurchaseAmount),
				metrics.FormatRatio(rt.DailyCostRatio),
				metrics.FormatPercent(rt.CumulativeCostRatio),
			)
		}
	}

	return tw.Flush()
}
