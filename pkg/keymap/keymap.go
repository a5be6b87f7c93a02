package keymap

import (
	"codeberg.org/miketth/plancktl/pkg/keycode"
	"codeberg.org/miketth/plancktl/pkg/layer"
	"errors"
	"fmt"
)

const (
	Rows = 4
	Cols = 12
)

var (
	ErrOutOfBounds  = errors.New("position out of matrix bounds")
	ErrUnknownLayer = errors.New("unknown layer")
	ErrNoDefault    = errors.New("keymap has no qwerty layer")
)

// Position is a switch location in the matrix.
type Position struct {
	Row uint8
	Col uint8
}

func (p Position) Valid() bool {
	return p.Row < Rows && p.Col < Cols
}

func (p Position) String() string {
	return fmt.Sprintf("%d,%d", p.Row, p.Col)
}

type Grid [Rows][Cols]keycode.Code

// Keymap binds a grid of codes to each layer. A layer missing from the map
// behaves as if every position were transparent.
type Keymap map[layer.ID]*Grid

// LayerSource yields the layers to search, highest priority first.
type LayerSource interface {
	Priority() []layer.ID
}

// Resolve returns the code bound to pos on the highest priority layer that
// does not leave it transparent. If every layer is transparent at pos the
// result is keycode.No.
func (k Keymap) Resolve(pos Position, layers LayerSource) (keycode.Code, error) {
	if !pos.Valid() {
		return keycode.No, fmt.Errorf("%w: %s", ErrOutOfBounds, pos)
	}

	for _, l := range layers.Priority() {
		grid, ok := k[l]
		if !ok {
			continue
		}
		code := grid[pos.Row][pos.Col]
		if code != keycode.Transparent {
			return code, nil
		}
	}

	return keycode.No, nil
}

// Find returns the first position on layer l bound to code, scanning rows
// top to bottom.
func (k Keymap) Find(l layer.ID, code keycode.Code) (Position, bool) {
	grid, ok := k[l]
	if !ok {
		return Position{}, false
	}
	for r := range grid {
		for c := range grid[r] {
			if grid[r][c] == code {
				return Position{Row: uint8(r), Col: uint8(c)}, true
			}
		}
	}
	return Position{}, false
}

// Validate checks the static shape of the keymap: every layer must be known,
// the qwerty layer must exist and every momentary code must name a known layer.
func (k Keymap) Validate() error {
	if _, ok := k[layer.Qwerty]; !ok {
		return ErrNoDefault
	}

	for l, grid := range k {
		if !l.Valid() {
			return fmt.Errorf("%w: %d", ErrUnknownLayer, uint8(l))
		}
		if grid == nil {
			return fmt.Errorf("layer %s: nil grid", l)
		}
		for r := range grid {
			for c, code := range grid[r] {
				target, ok := code.MomentaryLayer()
				if ok && !target.Valid() {
					return fmt.Errorf("layer %s at %d,%d: %w: %d", l, r, c, ErrUnknownLayer, uint8(target))
				}
			}
		}
	}

	return nil
}
