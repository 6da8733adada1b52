package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arborlabs/arbor/pkg/batch"
	"github.com/arborlabs/arbor/pkg/measure"
	"github.com/arborlabs/arbor/pkg/skeleton"
)

// newCableCmd creates the cable command.
func newCableCmd(configPath *string) *cobra.Command {
	var (
		in        neuronInput
		ids       []int64
		smoothing int
		workers   int
	)

	cmd := &cobra.Command{
		Use:   "cable",
		Short: "Measure cable length in micrometers",
		Long:  `Cable sums the Euclidean edge lengths of one or more neurons and reports them in micrometers. With --smoothing the neuron is downsampled first, measuring a straightened arbor. Several --ids are fetched and measured in parallel.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			prog := newProgress(logger)

			var neurons skeleton.List
			switch {
			case len(ids) > 0:
				client, cleanup, err := in.client(ctx)
				if err != nil {
					return err
				}
				defer cleanup()
				if neurons, err = client.GetSkeletons(ctx, ids); err != nil {
					return err
				}
			default:
				sk, err := in.load(ctx)
				if err != nil {
					return err
				}
				neurons = skeleton.List{sk}
			}

			results, err := batch.Run(ctx, neurons, "cable",
				func(ctx context.Context, sk *skeleton.Skeleton) (float64, error) {
					return measure.CableLength(sk, measure.CableOptions{Smoothing: smoothing, Logger: logger})
				},
				batch.Options{Workers: workers, Logger: logger})
			if err != nil {
				return err
			}

			var total float64
			for i, r := range results {
				printKeyValue(neurons[i].Name, fmt.Sprintf("%.2f µm", r.Value))
				total += r.Value
			}
			if len(results) > 1 {
				printKeyValue("total", fmt.Sprintf("%.2f µm", total))
			}
			prog.done(fmt.Sprintf("Measured %d neurons", len(results)))
			return nil
		},
	}

	in.bind(cmd, configPath)
	cmd.Flags().Int64SliceVar(&ids, "ids", nil, "measure several skeletons from the server")
	cmd.Flags().IntVar(&smoothing, "smoothing", 1, "downsampling factor applied before measuring")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker pool size (0 = number of CPUs)")
	return cmd
}
