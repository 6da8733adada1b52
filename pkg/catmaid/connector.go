package catmaid

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/arborlabs/arbor/pkg/errors"
	"github.com/arborlabs/arbor/pkg/measure"
)

// GetConnectorDetails resolves connector ids into full synapse records:
// which skeleton and node each connector is presynaptic to, and which
// skeletons and nodes receive it. Connectors unknown to the server are
// silently absent from the result.
func (c *Client) GetConnectorDetails(ctx context.Context, connectorIDs []int64) ([]measure.ConnectorDetail, error) {
	if len(connectorIDs) == 0 {
		return nil, nil
	}

	rawURL := c.endpoint("connector/skeletons")
	key := c.keyer.ConnectorKey(c.cfg.BaseURL, connectorIDs)

	data, err := c.cached(ctx, "connectors", strconv.Itoa(len(connectorIDs))+" ids", key, func() ([]byte, error) {
		form := url.Values{}
		for i, id := range connectorIDs {
			form.Set("connector_ids["+strconv.Itoa(i)+"]", strconv.FormatInt(id, 10))
		}
		return c.postForm(ctx, rawURL, form)
	})
	if err != nil {
		return nil, err
	}

	return parseConnectorDetails(data)
}

// The response is a list of [connector_id, detail] pairs.
func parseConnectorDetails(data []byte) ([]measure.ConnectorDetail, error) {
	var rows [][]json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decoding connector details")
	}

	out := make([]measure.ConnectorDetail, 0, len(rows))
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		var id int64
		if err := json.Unmarshal(row[0], &id); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "decoding connector id")
		}
		var detail struct {
			PresynapticTo      int64   `json:"presynaptic_to"`
			PresynapticToNode  int64   `json:"presynaptic_to_node"`
			PostsynapticTo     []int64 `json:"postsynaptic_to"`
			PostsynapticToNode []int64 `json:"postsynaptic_to_node"`
		}
		if err := json.Unmarshal(row[1], &detail); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "decoding connector %d detail", id)
		}
		out = append(out, measure.ConnectorDetail{
			ConnectorID:        id,
			PresynapticTo:      detail.PresynapticTo,
			PresynapticToNode:  detail.PresynapticToNode,
			PostsynapticTo:     detail.PostsynapticTo,
			PostsynapticToNode: detail.PostsynapticToNode,
		})
	}
	return out, nil
}
