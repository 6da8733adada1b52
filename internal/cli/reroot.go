package cli

import (
	"github.com/spf13/cobra"

	"github.com/arborlabs/arbor/pkg/errors"
	"github.com/arborlabs/arbor/pkg/skeleton"
	"github.com/arborlabs/arbor/pkg/skeleton/transform"
)

// targetRef turns the --node / --tag flag pair into a NodeRef.
func targetRef(nodeID int64, tag string) (skeleton.NodeRef, error) {
	switch {
	case nodeID != 0 && tag != "":
		return skeleton.NodeRef{}, errors.New(errors.ErrCodeInvalidInput, "--node and --tag are mutually exclusive")
	case nodeID != 0:
		return skeleton.ByID(nodeID), nil
	case tag != "":
		return skeleton.ByTag(tag), nil
	default:
		return skeleton.NodeRef{}, errors.New(errors.ErrCodeInvalidInput, "pass --node ID or --tag LABEL")
	}
}

// newRerootCmd creates the reroot command.
func newRerootCmd(configPath *string) *cobra.Command {
	var (
		in     neuronInput
		nodeID int64
		tag    string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "reroot",
		Short: "Move the root to another node",
		Long:  `Reroot redirects all parent links so the given node (by id, or by a tag resolving to exactly one node, e.g. "soma") becomes the new root.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			if out == "" {
				return errors.New(errors.ErrCodeInvalidInput, "pass --out FILE for the rerooted neuron")
			}
			target, err := targetRef(nodeID, tag)
			if err != nil {
				return err
			}

			sk, err := in.load(cmd.Context())
			if err != nil {
				return err
			}

			res, err := transform.Reroot(sk, target, transform.Options{InPlace: true, Logger: logger})
			if errors.Is(err, errors.ErrCodeNoOp) {
				printWarning("Target already is the root; writing the neuron unchanged")
				res = sk
			} else if err != nil {
				return err
			}

			if err := writeSWCFile(res, out); err != nil {
				return err
			}
			root, err := res.Root()
			if err != nil {
				return err
			}
			printSuccess("Rerooted %s to node %d", res.Name, root.ID)
			printFile(out)
			return nil
		},
	}

	in.bind(cmd, configPath)
	cmd.Flags().Int64Var(&nodeID, "node", 0, "target node id")
	cmd.Flags().StringVar(&tag, "tag", "", "target tag resolving to exactly one node")
	cmd.Flags().StringVar(&out, "out", "", "output SWC file")
	return cmd
}
