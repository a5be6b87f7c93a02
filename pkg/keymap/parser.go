package keymap

import (
	"codeberg.org/miketth/plancktl/pkg/keycode"
	"codeberg.org/miketth/plancktl/pkg/layer"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseKeymapFile reads an XML keymap such as
//
//	<keymap name="planck">
//	  <layer name="qwerty">
//	    <row>KC_TAB KC_Q KC_W ...</row>
//	    ...
//	  </layer>
//	</keymap>
//
// Every layer must have exactly Rows rows of Cols codes each.
func ParseKeymapFile(path string) (Keymap, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return ParseKeymap(file)
}

func ParseKeymap(r io.Reader) (Keymap, error) {
	var doc xmlKeymap
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode xml: %w", err)
	}

	km := make(Keymap, len(doc.Layers))
	for _, xl := range doc.Layers {
		l, err := layer.Parse(xl.Name)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLayer, xl.Name)
		}
		if _, dup := km[l]; dup {
			return nil, fmt.Errorf("layer %s defined twice", l)
		}

		grid, err := parseGrid(xl.Rows)
		if err != nil {
			return nil, fmt.Errorf("layer %s: %w", l, err)
		}
		km[l] = grid
	}

	if err := km.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	return km, nil
}

func parseGrid(rows []string) (*Grid, error) {
	if len(rows) != Rows {
		return nil, fmt.Errorf("%w: %d rows, want %d", ErrOutOfBounds, len(rows), Rows)
	}

	var grid Grid
	for r, row := range rows {
		fields := strings.Fields(row)
		if len(fields) != Cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrOutOfBounds, r, len(fields), Cols)
		}
		for c, name := range fields {
			code, err := keycode.Parse(name)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", r, c, err)
			}
			grid[r][c] = code
		}
	}

	return &grid, nil
}
