package catmaid

import (
	"context"
	"encoding/json"
	"strconv"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/arborlabs/arbor/pkg/errors"
	"github.com/arborlabs/arbor/pkg/skeleton"
)

// GetSkeleton fetches one neuron and converts it into a classified
// Skeleton. The compact-detail payload carries the treenodes, the
// connectors attached to them, and the tag mapping.
func (c *Client) GetSkeleton(ctx context.Context, skeletonID int64) (*skeleton.Skeleton, error) {
	rawURL := c.endpoint("skeletons/%d/compact-detail?with_connectors=true&with_tags=true", skeletonID)
	key := c.keyer.SkeletonKey(c.cfg.BaseURL, skeletonID)

	data, err := c.cached(ctx, "skeleton", strconv.FormatInt(skeletonID, 10), key, func() ([]byte, error) {
		return c.get(ctx, rawURL)
	})
	if err != nil {
		return nil, err
	}

	sk, err := parseCompactSkeleton(skeletonID, data)
	if err != nil {
		return nil, err
	}
	if err := skeleton.Classify(sk); err != nil {
		return nil, err
	}

	c.logger.Info("fetched skeleton",
		"skeleton", skeletonID, "nodes", sk.NodeCount(), "connectors", len(sk.Connectors()))
	return sk, nil
}

// GetSkeletons fetches several neurons sequentially and returns them in
// input order.
func (c *Client) GetSkeletons(ctx context.Context, skeletonIDs []int64) (skeleton.List, error) {
	out := make(skeleton.List, 0, len(skeletonIDs))
	for _, id := range skeletonIDs {
		sk, err := c.GetSkeleton(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, sk)
	}
	return out, nil
}

// compact-detail is three positional arrays: node rows, connector rows,
// and the tag map. Rows mix ints, floats and nulls, so everything
// decodes through json.Number first.
func parseCompactSkeleton(skeletonID int64, data []byte) (*skeleton.Skeleton, error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decoding skeleton %d payload", skeletonID)
	}
	if len(payload) < 1 {
		return nil, errors.New(errors.ErrCodeInternal, "empty payload for skeleton %d", skeletonID)
	}

	sk := skeleton.New("skeleton_"+strconv.FormatInt(skeletonID, 10), skeletonID)

	// Node rows: [id, parent_id, user_id, x, y, z, radius, confidence].
	var nodeRows [][]json.Number
	if err := json.Unmarshal(payload[0], &nodeRows); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decoding skeleton %d nodes", skeletonID)
	}
	for _, row := range nodeRows {
		if len(row) < 7 {
			return nil, errors.New(errors.ErrCodeInternal,
				"short node row (%d fields) in skeleton %d", len(row), skeletonID)
		}
		id, err := row[0].Int64()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "node id in skeleton %d", skeletonID)
		}
		parent := skeleton.NoParent
		if row[1] != "" {
			if parent, err = row[1].Int64(); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "parent of node %d", id)
			}
		}
		x, _ := row[3].Float64()
		y, _ := row[4].Float64()
		z, _ := row[5].Float64()
		radius, _ := row[6].Float64()

		if err := sk.AddNode(skeleton.Node{
			ID:       id,
			ParentID: parent,
			Pos:      r3.Vec{X: x, Y: y, Z: z},
			Radius:   radius,
		}); err != nil {
			return nil, err
		}
	}

	// Connector rows: [treenode_id, connector_id, relation, x, y, z].
	// Relation 0 is presynaptic, 1 postsynaptic; other relations
	// (gap junctions, abutting) are skipped.
	if len(payload) > 1 {
		var cnRows [][]json.Number
		if err := json.Unmarshal(payload[1], &cnRows); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "decoding skeleton %d connectors", skeletonID)
		}
		for _, row := range cnRows {
			if len(row) < 3 {
				continue
			}
			nodeID, _ := row[0].Int64()
			connID, _ := row[1].Int64()
			relation, _ := row[2].Int64()

			var rel skeleton.Relation
			switch relation {
			case 0:
				rel = skeleton.RelPresynaptic
			case 1:
				rel = skeleton.RelPostsynaptic
			default:
				continue
			}
			sk.AddConnector(skeleton.Connector{ID: connID, NodeID: nodeID, Relation: rel})
		}
	}

	if len(payload) > 2 {
		var tags map[string][]int64
		if err := json.Unmarshal(payload[2], &tags); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "decoding skeleton %d tags", skeletonID)
		}
		for label, ids := range tags {
			sk.AddTag(label, ids...)
		}
	}

	return sk, nil
}
