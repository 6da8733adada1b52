package cli

import (
	"github.com/spf13/cobra"

	"github.com/arborlabs/arbor/pkg/errors"
	"github.com/arborlabs/arbor/pkg/skeleton/transform"
)

// newCutCmd creates the cut command.
func newCutCmd(configPath *string) *cobra.Command {
	var (
		in       neuronInput
		nodeID   int64
		tag      string
		strategy string
		distOut  string
		proxOut  string
	)

	cmd := &cobra.Command{
		Use:   "cut",
		Short: "Split a neuron into distal and proximal halves",
		Long:  `Cut severs the edge above the given node. The node and its subtree become the distal half, rooted at the cut node; everything else becomes the proximal half.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			if distOut == "" || proxOut == "" {
				return errors.New(errors.ErrCodeInvalidInput, "pass --distal FILE and --proximal FILE")
			}
			target, err := targetRef(nodeID, tag)
			if err != nil {
				return err
			}

			var strat transform.Strategy
			switch strategy {
			case "mincut":
				strat = transform.StrategyMinCut
			case "leafwalk":
				strat = transform.StrategyLeafWalk
			default:
				return errors.New(errors.ErrCodeInvalidInput, "unknown strategy %q: want mincut or leafwalk", strategy)
			}

			sk, err := in.load(cmd.Context())
			if err != nil {
				return err
			}

			distal, proximal, err := transform.Cut(sk, target, strat, transform.Options{Logger: logger})
			if err != nil {
				return err
			}

			if err := writeSWCFile(distal, distOut); err != nil {
				return err
			}
			if err := writeSWCFile(proximal, proxOut); err != nil {
				return err
			}

			printSuccess("Cut %s: %d distal, %d proximal nodes", sk.Name, distal.NodeCount(), proximal.NodeCount())
			printDetail("distal synapses: %d, proximal synapses: %d",
				len(distal.Connectors()), len(proximal.Connectors()))
			printFile(distOut)
			printFile(proxOut)
			return nil
		},
	}

	in.bind(cmd, configPath)
	cmd.Flags().Int64Var(&nodeID, "node", 0, "cut node id")
	cmd.Flags().StringVar(&tag, "tag", "", "cut tag resolving to exactly one node")
	cmd.Flags().StringVar(&strategy, "strategy", "mincut", "cut algorithm: mincut or leafwalk")
	cmd.Flags().StringVar(&distOut, "distal", "", "output SWC file for the distal half")
	cmd.Flags().StringVar(&proxOut, "proximal", "", "output SWC file for the proximal half")
	return cmd
}
