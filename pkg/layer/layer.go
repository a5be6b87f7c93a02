package layer

import "fmt"

// ID names one of the fixed layers of the keymap.
type ID uint8

const (
	Qwerty     ID = 0
	Lower      ID = 1
	Raise      ID = 2
	Plover     ID = 3
	Navigation ID = 4
	Adjust     ID = 16
)

// All lists every layer in ascending id order.
var All = []ID{Qwerty, Lower, Raise, Plover, Navigation, Adjust}

var names = map[ID]string{
	Qwerty:     "qwerty",
	Lower:      "lower",
	Raise:      "raise",
	Plover:     "plover",
	Navigation: "navigation",
	Adjust:     "adjust",
}

func (l ID) String() string {
	if name, ok := names[l]; ok {
		return name
	}
	return fmt.Sprintf("layer(%d)", uint8(l))
}

func (l ID) Valid() bool {
	_, ok := names[l]
	return ok
}

// IsExclusive reports whether l suppresses every other layer while active.
func (l ID) IsExclusive() bool {
	return l == Plover
}

// Parse returns the layer with the given name.
func Parse(name string) (ID, error) {
	for id, n := range names {
		if n == name {
			return id, nil
		}
	}
	return 0, fmt.Errorf("unknown layer %q", name)
}

func (l ID) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("unknown layer %d", uint8(l))
	}
	return []byte(l.String()), nil
}

func (l *ID) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
