package catmaid

import (
	"context"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/arborlabs/arbor/pkg/errors"
	"github.com/arborlabs/arbor/pkg/spatial"
)

// GetVolume fetches a volume mesh by name or numeric id and reduces it
// to its vertex cloud. Name lookups list the project's volumes first;
// exact name matches win.
func (c *Client) GetVolume(ctx context.Context, nameOrID string) (spatial.Volume, error) {
	id, err := strconv.ParseInt(nameOrID, 10, 64)
	if err != nil {
		if id, err = c.findVolumeID(ctx, nameOrID); err != nil {
			return spatial.Volume{}, err
		}
	}

	rawURL := c.endpoint("volumes/%d/", id)
	key := c.keyer.VolumeKey(c.cfg.BaseURL, nameOrID)

	data, err := c.cached(ctx, "volume", nameOrID, key, func() ([]byte, error) {
		return c.get(ctx, rawURL)
	})
	if err != nil {
		return spatial.Volume{}, err
	}

	var payload struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
		Mesh string `json:"mesh"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return spatial.Volume{}, errors.Wrap(errors.ErrCodeInternal, err, "decoding volume %s", nameOrID)
	}

	vertices, err := parseMeshVertices(payload.Mesh)
	if err != nil {
		return spatial.Volume{}, errors.Wrap(errors.ErrCodeInternal, err, "parsing mesh of volume %s", nameOrID)
	}

	vol := spatial.Volume{Name: payload.Name, ID: payload.ID, Vertices: vertices}
	c.logger.Info("fetched volume", "volume", vol.Name, "id", vol.ID, "vertices", len(vol.Vertices))
	return vol, nil
}

func (c *Client) findVolumeID(ctx context.Context, name string) (int64, error) {
	data, err := c.get(ctx, c.endpoint("volumes/"))
	if err != nil {
		return 0, err
	}

	var listing struct {
		Columns []string            `json:"columns"`
		Data    [][]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &listing); err != nil {
		return 0, errors.Wrap(errors.ErrCodeInternal, err, "decoding volume listing")
	}

	idCol, nameCol := -1, -1
	for i, col := range listing.Columns {
		switch col {
		case "id":
			idCol = i
		case "name":
			nameCol = i
		}
	}
	if idCol < 0 || nameCol < 0 {
		return 0, errors.New(errors.ErrCodeInternal, "volume listing misses id or name column")
	}

	for _, row := range listing.Data {
		if len(row) <= idCol || len(row) <= nameCol {
			continue
		}
		var rowName string
		if err := json.Unmarshal(row[nameCol], &rowName); err != nil || rowName != name {
			continue
		}
		var id int64
		if err := json.Unmarshal(row[idCol], &id); err != nil {
			return 0, errors.Wrap(errors.ErrCodeInternal, err, "decoding id of volume %q", name)
		}
		return id, nil
	}
	return 0, errors.New(errors.ErrCodeNotFound, "no volume named %q in project %d", name, c.cfg.Project)
}

// CATMAID serves volume meshes as X3D fragments; the vertex cloud lives
// in the point attribute of the Coordinate elements as a flat
// whitespace-separated coordinate list.
var coordinateRe = regexp.MustCompile(`(?i)<coordinate[^>]*point\s*=\s*['"]([^'"]*)['"]`)

func parseMeshVertices(mesh string) ([]r3.Vec, error) {
	matches := coordinateRe.FindAllStringSubmatch(mesh, -1)
	if len(matches) == 0 {
		return nil, errors.New(errors.ErrCodeInternal, "no coordinate data in mesh")
	}

	var vertices []r3.Vec
	for _, m := range matches {
		fields := strings.Fields(strings.ReplaceAll(m[1], ",", " "))
		if len(fields)%3 != 0 {
			return nil, errors.New(errors.ErrCodeInternal,
				"coordinate list length %d is not a multiple of 3", len(fields))
		}
		for i := 0; i < len(fields); i += 3 {
			x, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, err
			}
			y, err := strconv.ParseFloat(fields[i+1], 64)
			if err != nil {
				return nil, err
			}
			z, err := strconv.ParseFloat(fields[i+2], 64)
			if err != nil {
				return nil, err
			}
			vertices = append(vertices, r3.Vec{X: x, Y: y, Z: z})
		}
	}
	return vertices, nil
}
