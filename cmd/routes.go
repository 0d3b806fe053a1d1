package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mazichukwuka/portfolio/internal/router"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the site routes for the configured features",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		table := router.NewTable(router.Options{Blog: cfg.Features.Blog, NotFound: cfg.Features.NotFound})

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PATH\tPAGE\tTITLE\tGROUP")
		for _, r := range table.Routes() {
			title := r.Title
			if r.Hidden {
				title += " (hidden)"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Path, r.Page, title, r.Group)
		}
		if !cfg.Features.NotFound {
			fmt.Fprintln(w, "*\t-\tbare 404\t")
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)
}
