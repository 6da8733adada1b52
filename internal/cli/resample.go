package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arborlabs/arbor/pkg/errors"
	"github.com/arborlabs/arbor/pkg/skeleton/transform"
)

// newResampleCmd creates the resample command.
func newResampleCmd(configPath *string) *cobra.Command {
	var (
		in     neuronInput
		factor int
		out    string
	)

	cmd := &cobra.Command{
		Use:   "resample",
		Short: "Downsample a neuron while keeping fixed points",
		Long:  `Resample reduces a neuron's node count by the given factor. The root, branch points, end nodes and synapse-bearing nodes always survive; only slab nodes between them are dropped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			if out == "" {
				return errors.New(errors.ErrCodeInvalidInput, "pass --out FILE for the resampled neuron")
			}

			sk, err := in.load(cmd.Context())
			if err != nil {
				return err
			}
			before := sk.NodeCount()

			res, err := transform.Downsample(sk, factor, transform.Options{InPlace: true, Logger: logger})
			if err != nil {
				return err
			}
			if err := writeSWCFile(res, out); err != nil {
				return err
			}

			printSuccess("Resampled %s by factor %d: %d %s %d nodes", res.Name, factor, before, iconArrow, res.NodeCount())
			printFile(out)
			prog.done(fmt.Sprintf("Dropped %d nodes", before-res.NodeCount()))
			return nil
		},
	}

	in.bind(cmd, configPath)
	cmd.Flags().IntVar(&factor, "factor", 2, "resampling factor (1 keeps the neuron unchanged)")
	cmd.Flags().StringVar(&out, "out", "", "output SWC file")
	return cmd
}
