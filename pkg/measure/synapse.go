package measure

import (
	"slices"

	"github.com/charmbracelet/log"

	"github.com/arborlabs/arbor/pkg/skeleton"
)

// ConnectorDetail is the resolved record of one synaptic connector: which
// skeleton and node it is presynaptic to, and which skeletons and nodes
// it is postsynaptic to.
type ConnectorDetail struct {
	ConnectorID        int64   `json:"connector_id"`
	PresynapticTo      int64   `json:"presynaptic_to"`
	PresynapticToNode  int64   `json:"presynaptic_to_node"`
	PostsynapticTo     []int64 `json:"postsynaptic_to"`
	PostsynapticToNode []int64 `json:"postsynaptic_to_node"`
}

// SynapseDistanceOptions configures SynapseRootDistances.
type SynapseDistanceOptions struct {
	// PreFilter keeps only connectors presynaptic to one of these
	// skeletons. Empty means no filtering.
	PreFilter []int64
	// PostFilter keeps only connectors postsynaptic to one of these
	// skeletons. Empty means no filtering.
	PostFilter []int64
	// Logger receives progress diagnostics. Nil means log.Default().
	Logger *log.Logger
}

// SynapseRootDistances computes the geodesic distance in nanometers from
// every synaptic site on the neuron to its root, keyed by the node the
// site attaches to. Presynaptic and postsynaptic sites are reported
// separately; sites whose node is not part of the skeleton are skipped.
// All walks share one memoizing calculator, so overlapping rootward paths
// are measured once.
func SynapseRootDistances(sk *skeleton.Skeleton, details []ConnectorDetail, opts SynapseDistanceOptions) (pre, post map[int64]float64, err error) {
	calc, err := NewDistCalc(sk)
	if err != nil {
		return nil, nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	kept := details
	if len(opts.PreFilter) > 0 || len(opts.PostFilter) > 0 {
		kept = kept[:0:0]
		for _, cn := range details {
			if len(opts.PreFilter) > 0 && !slices.Contains(opts.PreFilter, cn.PresynapticTo) {
				continue
			}
			if len(opts.PostFilter) > 0 && !containsAny(cn.PostsynapticTo, opts.PostFilter) {
				continue
			}
			kept = append(kept, cn)
		}
		logger.Debug("filtered connectors", "skeleton", sk.ID, "kept", len(kept), "total", len(details))
	}

	pre = make(map[int64]float64)
	post = make(map[int64]float64)
	for _, cn := range kept {
		if cn.PresynapticTo == sk.ID {
			if _, ok := sk.Node(cn.PresynapticToNode); ok {
				d, err := calc.DistToRoot(cn.PresynapticToNode)
				if err != nil {
					return nil, nil, err
				}
				pre[cn.PresynapticToNode] = d
			}
		}
		if slices.Contains(cn.PostsynapticTo, sk.ID) {
			for _, nd := range cn.PostsynapticToNode {
				if _, ok := sk.Node(nd); !ok {
					continue
				}
				d, err := calc.DistToRoot(nd)
				if err != nil {
					return nil, nil, err
				}
				post[nd] = d
			}
		}
	}

	logger.Info("calculated synapse root distances",
		"skeleton", sk.ID, "presynaptic", len(pre), "postsynaptic", len(post))
	return pre, post, nil
}

func containsAny(haystack, needles []int64) bool {
	for _, n := range needles {
		if slices.Contains(haystack, n) {
			return true
		}
	}
	return false
}
