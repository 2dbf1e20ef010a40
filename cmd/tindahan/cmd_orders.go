package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/tindahan/app/repositories"
	"github.com/shashiranjanraj/tindahan/config"
	"github.com/shashiranjanraj/tindahan/pkg/kv"
)

// tindahan orders:list — print every recorded order.
var ordersListCmd = &cobra.Command{
	Use:   "orders:list",
	Short: "List all recorded orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		store, err := kv.Open()
		if err != nil {
			return err
		}

		orders := repositories.NewOrderRepository(store).All()
		if len(orders) == 0 {
			fmt.Println("No orders recorded.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tPLACED\tSTATUS\tITEMS\tTOTAL")
		for _, o := range orders {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
				o.ID, o.CreatedAt.Format("2006-01-02 15:04:05"), o.Status, len(o.Items), o.Total.StringFixed(2))
		}
		return w.Flush()
	},
}
