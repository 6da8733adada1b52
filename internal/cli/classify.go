package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arborlabs/arbor/pkg/skeleton"
)

// newClassifyCmd creates the classify command.
func newClassifyCmd(configPath *string) *cobra.Command {
	var in neuronInput

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Report node roles and topology statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			sk, err := in.load(cmd.Context())
			if err != nil {
				return err
			}
			if err := sk.Validate(); err != nil {
				return err
			}

			root, err := sk.Root()
			if err != nil {
				return err
			}

			synapses := 0
			for _, n := range sk.Nodes() {
				if n.HasSynapse {
					synapses++
				}
			}

			fmt.Println(StyleTitle.Render(sk.Name))
			printKeyValue("nodes", fmt.Sprintf("%d", sk.NodeCount()))
			printKeyValue("root", fmt.Sprintf("%d", root.ID))
			printKeyValue("branch points", fmt.Sprintf("%d", len(sk.NodesByRole(skeleton.RoleBranch))))
			printKeyValue("end nodes", fmt.Sprintf("%d", len(sk.NodesByRole(skeleton.RoleEnd))))
			printKeyValue("slab nodes", fmt.Sprintf("%d", len(sk.NodesByRole(skeleton.RoleSlab))))
			printKeyValue("synapse sites", fmt.Sprintf("%d", synapses))
			printKeyValue("connectors", fmt.Sprintf("%d", len(sk.Connectors())))
			printKeyValue("tags", fmt.Sprintf("%d", len(sk.Tags())))

			prog.done(fmt.Sprintf("Classified %d nodes", sk.NodeCount()))
			return nil
		},
	}

	in.bind(cmd, configPath)
	return cmd
}
