package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/arborlabs/arbor/pkg/errors"
	"github.com/arborlabs/arbor/pkg/measure"
)

// newSynapsesCmd creates the synapses command.
func newSynapsesCmd(configPath *string) *cobra.Command {
	var (
		in   neuronInput
		pre  []int64
		post []int64
	)

	cmd := &cobra.Command{
		Use:   "synapses",
		Short: "Measure synapse distances to the root",
		Long:  `Synapses walks every synapse of a neuron back to the root along the arbor and reports the geodesic distance in nanometers, split into presynaptic and postsynaptic sites. Connector partners come from the server, so this command needs --id.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			prog := newProgress(logger)

			if in.skeletonID == 0 {
				return errors.New(errors.ErrCodeInvalidInput, "synapses needs --id; connector partners are not part of SWC files")
			}

			client, cleanup, err := in.client(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			sk, err := client.GetSkeleton(ctx, in.skeletonID)
			if err != nil {
				return err
			}

			connectorIDs := make([]int64, 0, len(sk.Connectors()))
			for _, cn := range sk.Connectors() {
				connectorIDs = append(connectorIDs, cn.ID)
			}
			details, err := client.GetConnectorDetails(ctx, connectorIDs)
			if err != nil {
				return err
			}

			preDist, postDist, err := measure.SynapseRootDistances(sk, details, measure.SynapseDistanceOptions{
				PreFilter:  pre,
				PostFilter: post,
				Logger:     logger,
			})
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render(sk.Name))
			printSection("presynaptic", preDist)
			printSection("postsynaptic", postDist)
			prog.done(fmt.Sprintf("Measured %d synapses", len(preDist)+len(postDist)))
			return nil
		},
	}

	in.bind(cmd, configPath)
	cmd.Flags().Int64SliceVar(&pre, "pre", nil, "keep only synapses presynaptic to these skeletons")
	cmd.Flags().Int64SliceVar(&post, "post", nil, "keep only synapses postsynaptic to these skeletons")
	return cmd
}

func printSection(label string, dists map[int64]float64) {
	printKeyValue(label, fmt.Sprintf("%d sites", len(dists)))
	ids := make([]int64, 0, len(dists))
	for id := range dists {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		printDetail("connector %d: %.0f nm", id, dists[id])
	}
}
