package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewStatsCommand mostra os contadores do painel.
func NewStatsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Mostra total, confirmados, vencidos e chamados SGA/CRT",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := opts.service(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			stats := svc.Stats()
			if opts.Format == "json" {
				return opts.writeJSON(cmd.OutOrStdout(), stats)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Total:        %d\n", stats.Total)
			fmt.Fprintf(w, "Confirmados:  %d\n", stats.Confirmed)
			fmt.Fprintf(w, "Vencidos:     %d\n", stats.Expired)
			fmt.Fprintf(w, "SGA/CRT:      %d\n", stats.SgaCrt)
			return nil
		},
	}
}

// NewAgendaCommand lista os dias com agendamentos.
func NewAgendaCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "agenda",
		Short: "Agrupa os agendamentos por data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := opts.service(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			days := svc.Agenda()
			if opts.Format == "json" {
				return opts.writeJSON(cmd.OutOrStdout(), days)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "DATA\tTOTAL\tCONFIRMADOS")
			for _, d := range days {
				fmt.Fprintf(tw, "%s\t%d\t%d\n", d.Date, d.Count, d.Confirmed)
			}
			return tw.Flush()
		},
	}
}
