package cli

import (
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newConfigCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after defaults, the config file, NSGT_* environment
variables and flags have been merged. The YAML output is a valid config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if strings.EqualFold(cfg.OutputFormat, "yaml") {
				out, err := cfg.YAML()
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			return render(cmd.OutOrStdout(), cfg.OutputFormat, cfg, func(tw *tabwriter.Writer) {
				keys := a.v.AllKeys()
				slices.Sort(keys)
				for _, k := range keys {
					fmt.Fprintf(tw, "%s\t%v\n", k, a.v.Get(k))
				}
			})
		},
	}
}
