package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/detranagenda/painel/internal/mask"
)

// NewMaskCommand aplica as máscaras de CPF e telefone.
func NewMaskCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mask",
		Short: "Formata CPF ou telefone",
	}
	cmd.AddCommand(maskSubcommand(opts, "cpf", "Formata um CPF (###.###.###-##)", mask.CPF))
	cmd.AddCommand(maskSubcommand(opts, "phone", "Formata um telefone ((##) #####-####)", mask.Phone))
	return cmd
}

func maskSubcommand(opts *RootOptions, name, short string, apply func(string) string) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <valor>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := apply(args[0])
			if opts.Format == "json" {
				return opts.writeJSON(cmd.OutOrStdout(), map[string]string{"value": value})
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}
