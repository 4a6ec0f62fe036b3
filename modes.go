package sstv

import (
	"fmt"
	"strings"

	"github.com/tphakala/go-sstv/internal/mode"
)

// Mode identifies one of the supported SSTV transmission modes.
type Mode int

// The supported modes, in mode-table order. The value doubles as the
// index into the internal descriptor table.
const (
	Robot8BW Mode = iota
	Robot24BW
	MartinM1
	MartinM2
	ScottieS1
	ScottieS2
	Robot36
	PD90
	PD120
	PD160
	PD180
	PD240
	PD290
)

// Modes returns all supported modes in table order.
func Modes() []Mode {
	modes := make([]Mode, mode.Count())
	for i := range modes {
		modes[i] = Mode(i)
	}
	return modes
}

func (m Mode) valid() bool {
	return m >= 0 && int(m) < mode.Count()
}

func (m Mode) descriptor() mode.Descriptor {
	return mode.Get(int(m))
}

// String returns the canonical mode name, e.g. "MartinM1".
func (m Mode) String() string {
	if !m.valid() {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return m.descriptor().Name
}

// VISCode returns the 7-bit VIS identifier transmitted in the header.
func (m Mode) VISCode() uint8 {
	return m.descriptor().VISCode
}

// Size returns the mode-native image geometry in pixels.
func (m Mode) Size() (width, height int) {
	d := m.descriptor()
	return d.Width, d.Height
}

// Grayscale reports whether the mode transmits luma only.
func (m Mode) Grayscale() bool {
	return m.descriptor().Family == mode.FamilyGrayscale
}

// NewImage allocates a pixel field of the mode's native geometry.
func (m Mode) NewImage() *Image {
	d := m.descriptor()
	return NewImage(d.Width, d.Height)
}

// LookupMode resolves a mode by name, ignoring case, spaces, and dashes,
// so "MartinM1", "martin m1", and "martin-m1" all resolve to the same
// mode. It returns ErrUnknownMode for unrecognized names.
func LookupMode(name string) (Mode, error) {
	key := normalizeModeName(name)
	for _, m := range Modes() {
		if normalizeModeName(m.String()) == key {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

func normalizeModeName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "")
	name = strings.ReplaceAll(name, "-", "")
	name = strings.ReplaceAll(name, "_", "")
	return name
}
