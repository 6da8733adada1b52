package cli

import (
	"github.com/spf13/cobra"

	"github.com/arborlabs/arbor/pkg/config"
	"github.com/arborlabs/arbor/pkg/errors"
	"github.com/arborlabs/arbor/pkg/skeleton/transform"
)

// newLongestCmd creates the longest command.
func newLongestCmd(configPath *string) *cobra.Command {
	var (
		in         neuronInput
		out        string
		rootToSoma bool
	)

	cmd := &cobra.Command{
		Use:   "longest",
		Short: "Reduce a neuron to its longest neurite",
		Long:  `Longest keeps only the path from the geodesically farthest tip back to the root and drops everything else. With --root-to-soma the neuron is first rerooted to its soma, detected as the single node whose radius exceeds the configured threshold.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			if out == "" {
				return errors.New(errors.ErrCodeInvalidInput, "pass --out FILE for the reduced neuron")
			}

			cfg, err := config.Load(*in.configPath)
			if err != nil {
				return err
			}

			sk, err := in.load(cmd.Context())
			if err != nil {
				return err
			}
			before := sk.NodeCount()

			res, err := transform.LongestNeurite(sk, transform.LongestNeuriteOptions{
				Options:    transform.Options{InPlace: true, Logger: logger},
				RootToSoma: rootToSoma,
				SomaRadius: cfg.Morpho.Radius(),
			})
			if err != nil {
				return err
			}
			if err := writeSWCFile(res, out); err != nil {
				return err
			}

			printSuccess("Reduced %s: %d %s %d nodes", res.Name, before, iconArrow, res.NodeCount())
			printFile(out)
			prog.done("Longest neurite extracted")
			return nil
		},
	}

	in.bind(cmd, configPath)
	cmd.Flags().StringVar(&out, "out", "", "output SWC file")
	cmd.Flags().BoolVar(&rootToSoma, "root-to-soma", false, "reroot to the soma before measuring")
	return cmd
}
