// File: cmd/templates.go
package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/xkilldash9x/scientist-cli/internal/calculated"
	"github.com/xkilldash9x/scientist-cli/internal/config"
	"github.com/xkilldash9x/scientist-cli/internal/observability"
)

func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "Lists the configured question models",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}
			return runTemplates(ctx, cfg, cmd.OutOrStdout())
		},
	}
}

// runTemplates prints each answerer in dispatch order.
func runTemplates(_ context.Context, cfg config.Interface, out io.Writer) error {
	d, err := buildDispatcher(cfg, observability.GetLogger())
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tREGEX\tGIVEN OBJECT\tREQUESTED VALUE")
	for _, a := range d.Answerers() {
		m, ok := a.(*calculated.Model)
		if !ok {
			fmt.Fprintf(w, "%s\t-\t-\t-\n", a.Name())
			continue
		}
		tpl := m.Template()
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", tpl.Name, tpl.Regex, tpl.GivenObject, tpl.RequestedValue)
	}
	return w.Flush()
}
