package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/arborlabs/arbor/pkg/errors"
	"github.com/arborlabs/arbor/pkg/spatial"
)

// newInVolumeCmd creates the involume command.
func newInVolumeCmd(configPath *string) *cobra.Command {
	var (
		in          neuronInput
		volumeName  string
		approximate bool
		ignoreAxes  []int
	)

	cmd := &cobra.Command{
		Use:   "involume",
		Short: "Count nodes inside a CATMAID volume",
		Long:  `Involume tests every node of a neuron against a volume from the server. The exact test uses the convex hull of the volume mesh; --approximate falls back to its bounding box, optionally ignoring axes (0=x, 1=y, 2=z).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			prog := newProgress(logger)

			if volumeName == "" {
				return errors.New(errors.ErrCodeInvalidInput, "pass --volume NAME_OR_ID")
			}

			client, cleanup, err := in.client(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			vol, err := client.GetVolume(ctx, volumeName)
			if err != nil {
				return err
			}

			sk, err := in.load(ctx)
			if err != nil {
				return err
			}

			nodes := sk.Nodes()
			points := make([]r3.Vec, len(nodes))
			for i, n := range nodes {
				points[i] = n.Pos
			}

			inside, err := spatial.InVolume(points, vol, spatial.Options{
				Approximate: approximate,
				IgnoreAxes:  ignoreAxes,
			})
			if err != nil {
				return err
			}

			count := 0
			for _, ok := range inside {
				if ok {
					count++
				}
			}

			fmt.Println(StyleTitle.Render(sk.Name))
			printKeyValue("volume", vol.Name)
			printKeyValue("inside", fmt.Sprintf("%d nodes", count))
			printKeyValue("outside", fmt.Sprintf("%d nodes", len(nodes)-count))
			prog.done(fmt.Sprintf("Tested %d nodes", len(nodes)))
			return nil
		},
	}

	in.bind(cmd, configPath)
	cmd.Flags().StringVar(&volumeName, "volume", "", "volume name or id on the server")
	cmd.Flags().BoolVar(&approximate, "approximate", false, "use the bounding box instead of the convex hull")
	cmd.Flags().IntSliceVar(&ignoreAxes, "ignore-axes", nil, "axes excluded from the bounding box test")
	return cmd
}
