// Package cli implementa o utilitário de linha de comando do painel.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/detranagenda/painel/internal/agenda"
)

// Opener abre o serviço de agenda já carregado e devolve a função de encerramento.
type Opener func(ctx context.Context) (*agenda.Service, func(), error)

// RootOptions guarda as flags globais.
type RootOptions struct {
	Format string
	open   Opener
}

// ValidFormats lista os formatos de saída aceitos.
var ValidFormats = []string{"text", "json"}

// NewRootCommand cria o comando raiz "agenda".
func NewRootCommand(open Opener) *cobra.Command {
	opts := &RootOptions{open: open}

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Painel de agendamentos DETRAN",
		Long:  "Ferramentas de linha de comando para backup, estatísticas e máscaras do painel de agendamentos.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			for _, f := range ValidFormats {
				if f == opts.Format {
					return nil
				}
			}
			return fmt.Errorf("formato %q inválido: use %v", opts.Format, ValidFormats)
		},
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "formato de saída (text|json)")

	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewAgendaCommand(opts))
	cmd.AddCommand(NewMaskCommand(opts))
	return cmd
}

func (o *RootOptions) service(ctx context.Context) (*agenda.Service, func(), error) {
	if o.open == nil {
		return nil, nil, fmt.Errorf("serviço de agenda indisponível")
	}
	return o.open(ctx)
}

func (o *RootOptions) writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
