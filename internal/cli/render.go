package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arborlabs/arbor/pkg/errors"
)

// newRenderCmd creates the render command.
func newRenderCmd(configPath *string) *cobra.Command {
	var (
		in  neuronInput
		out string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a neuron's topology as SVG or DOT",
		Long:  `Render draws the branching structure of a neuron. The output format follows the file extension: .svg renders through Graphviz, .dot writes the plain graph description.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			prog := newProgress(logger)

			if out == "" {
				return errors.New(errors.ErrCodeInvalidInput, "pass --out FILE.svg or --out FILE.dot")
			}

			sk, err := in.load(ctx)
			if err != nil {
				return err
			}

			var data []byte
			switch strings.ToLower(filepath.Ext(out)) {
			case ".svg":
				if data, err = sk.RenderSVG(ctx); err != nil {
					return err
				}
			case ".dot":
				data = []byte(sk.ToDOT())
			default:
				return errors.New(errors.ErrCodeInvalidInput, "unsupported output extension %q: want .svg or .dot", filepath.Ext(out))
			}

			if err := os.WriteFile(out, data, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "writing %s", out)
			}

			printSuccess("Rendered %s (%d nodes)", sk.Name, sk.NodeCount())
			printFile(out)
			prog.done("Render complete")
			return nil
		},
	}

	in.bind(cmd, configPath)
	cmd.Flags().StringVar(&out, "out", "", "output file (.svg or .dot)")
	return cmd
}
