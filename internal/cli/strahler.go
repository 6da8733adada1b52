package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arborlabs/arbor/pkg/skeleton/transform"
)

// newStrahlerCmd creates the strahler command.
func newStrahlerCmd(configPath *string) *cobra.Command {
	var in neuronInput

	cmd := &cobra.Command{
		Use:   "strahler",
		Short: "Annotate Strahler orders",
		Long:  `Strahler assigns every node its Strahler order, 1 at the tips and increasing where branches of equal order meet, and prints how much of the arbor each order covers.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			sk, err := in.load(cmd.Context())
			if err != nil {
				return err
			}

			orders, err := transform.Strahler(sk)
			if err != nil {
				return err
			}

			counts := map[int]int{}
			maxOrder := 0
			for _, o := range orders {
				counts[o]++
				if o > maxOrder {
					maxOrder = o
				}
			}

			fmt.Println(StyleTitle.Render(sk.Name))
			for o := 1; o <= maxOrder; o++ {
				printKeyValue(fmt.Sprintf("order %d", o), fmt.Sprintf("%d nodes", counts[o]))
			}
			prog.done(fmt.Sprintf("Annotated %d nodes up to order %d", len(orders), maxOrder))
			return nil
		},
	}

	in.bind(cmd, configPath)
	return cmd
}
