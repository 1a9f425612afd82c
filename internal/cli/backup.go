package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewExportCommand grava o backup dos agendamentos.
func NewExportCommand(opts *RootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exporta todos os agendamentos para um arquivo JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := opts.service(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			name, data, err := svc.Export()
			if err != nil {
				return err
			}
			if out == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if out == "" {
				out = name
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("gravar %s: %w", out, err)
			}
			if opts.Format == "json" {
				return opts.writeJSON(cmd.OutOrStdout(), map[string]any{"file": out, "bytes": len(data)})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backup exportado com sucesso: %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "arquivo de destino (padrão backup_detran_<data>.json; - para stdout)")
	return cmd
}

// NewImportCommand substitui os agendamentos pelo conteúdo de um backup.
func NewImportCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <arquivo>",
		Short: "Importa um backup JSON, substituindo todos os agendamentos",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("ler %s: %w", args[0], err)
			}

			svc, closeFn, err := opts.service(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			change, err := svc.Import(cmd.Context(), data)
			if err != nil {
				return err
			}
			if opts.Format == "json" {
				return opts.writeJSON(cmd.OutOrStdout(), map[string]any{
					"imported":  len(change.Item),
					"localOnly": change.Outcome.LocalOnly(),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d agendamento(s) importado(s).\n", len(change.Item))
			if change.Outcome.Failed() {
				fmt.Fprintln(cmd.OutOrStdout(), "Atenção: dados salvos apenas localmente.")
			}
			return nil
		},
	}
}
