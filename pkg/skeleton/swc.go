package skeleton

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/arborlabs/arbor/pkg/errors"
)

// ReadSWC parses a skeleton from SWC, the standard interchange format for
// reconstructed neurons: one node per line as
//
//	id type x y z radius parent
//
// with '#' comments and a parent of -1 at the root. The structure-type
// column is ignored; arbor derives roles from topology instead.
// Coordinates are taken as-is, so files exported in nanometers keep the
// library's native unit.
//
// The returned skeleton is classified but not validated; callers that
// cannot trust the file should run Validate.
func ReadSWC(r io.Reader, name string, id int64) (*Skeleton, error) {
	s := New(name, id)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 7 {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"swc line %d: want 7 fields, got %d", lineNo, len(fields))
		}

		var (
			vals [7]float64
			err  error
		)
		for i, f := range fields {
			if vals[i], err = strconv.ParseFloat(f, 64); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err,
					"swc line %d: field %d", lineNo, i+1)
			}
		}

		n := Node{
			ID:       int64(vals[0]),
			ParentID: int64(vals[6]),
			Pos:      r3.Vec{X: vals[2], Y: vals[3], Z: vals[4]},
			Radius:   vals[5],
		}
		if n.ParentID < 0 {
			n.ParentID = NoParent
		}
		if err := s.AddNode(n); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "reading swc")
	}
	if s.NodeCount() == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "swc input contains no nodes")
	}

	if err := Classify(s); err != nil {
		return nil, err
	}
	return s, nil
}

// WriteSWC writes the skeleton in SWC format, nodes in ascending ID
// order. The structure-type column is written as 0 (undefined).
func (s *Skeleton) WriteSWC(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %s (skeleton %d)\n", s.Name, s.ID)
	fmt.Fprintln(bw, "# id type x y z radius parent")
	for _, id := range s.NodeIDs() {
		n := s.nodes[id]
		parent := n.ParentID
		if n.IsRoot() {
			parent = -1
		}
		fmt.Fprintf(bw, "%d 0 %g %g %g %g %d\n", n.ID, n.Pos.X, n.Pos.Y, n.Pos.Z, n.Radius, parent)
	}
	return bw.Flush()
}
