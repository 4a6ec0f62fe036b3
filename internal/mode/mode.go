// Package mode defines the supported SSTV transmission modes as data.
//
// Each mode is one immutable Descriptor row holding the constants that
// drive transmission: VIS code, native image geometry, sync timing, and
// the family-specific scan parameters. All per-family behavior lives in
// the segment producer, which branches on Family; this package is purely
// declarative.
package mode

// Family identifies the transmission structure shared by a group of modes.
type Family int

const (
	// FamilyGrayscale transmits one luma scan per line (Robot BW modes).
	FamilyGrayscale Family = iota

	// FamilyMartin transmits green, blue, red scans separated by gaps.
	FamilyMartin

	// FamilyScottie transmits red, green, blue scans with the sync pulse
	// emitted inside the line body, before the red channel.
	FamilyScottie

	// FamilyRobot36 transmits full luma plus alternating Cr/Cb chroma,
	// one chroma channel per line.
	FamilyRobot36

	// FamilyPD transmits two source lines per transmitted line with
	// averaged chroma (Y0, Cr, Cb, Y1).
	FamilyPD
)

// String returns the family name.
func (f Family) String() string {
	switch f {
	case FamilyGrayscale:
		return "grayscale"
	case FamilyMartin:
		return "martin"
	case FamilyScottie:
		return "scottie"
	case FamilyRobot36:
		return "robot36"
	case FamilyPD:
		return "pd"
	default:
		return "unknown"
	}
}

// Descriptor is the immutable per-mode record of transmission constants.
// All durations are in milliseconds.
type Descriptor struct {
	// Name is the canonical mode name, e.g. "MartinM1".
	Name string

	// VISCode is the low 7 bits of the VIS byte transmitted in the header.
	VISCode uint8

	// Width and Height are the mode-native image geometry in pixels.
	Width  int
	Height int

	// SyncMS is the top-of-line horizontal sync pulse duration. Zero for
	// families that carry sync inside the line body (Scottie emits it
	// before the red channel, Robot 36 emits its own sync plus sync
	// porch); for those the body owns the pulse and the generic line
	// loop must not emit one.
	SyncMS float64

	// Family selects the line body structure.
	Family Family

	// ScanMS is the scan duration per line (grayscale) or per color
	// channel (Martin, Scottie). Scottie values store the nominal scan
	// minus the gap, since the nominal time is split into gap plus
	// actual pixel time.
	ScanMS float64

	// GapMS is the inter-channel gap (Martin, Scottie) or the chroma
	// separator duration (Robot 36).
	GapMS float64

	// SyncBeforeRedMS is the sync pulse Scottie emits at the start of
	// the body, before the red channel.
	SyncBeforeRedMS float64

	// YScanMS and CScanMS are the Robot 36 luma and chroma scan durations.
	YScanMS float64
	CScanMS float64

	// PorchMS is the porch after the Robot 36 chroma separator, or the
	// porch after the PD sync pulse.
	PorchMS float64

	// SyncPorchMS is the Robot 36 porch directly after the sync pulse.
	SyncPorchMS float64

	// PixelMS is the PD per-pixel duration, shared by all four scans of
	// a transmitted line.
	PixelMS float64
}

// Lines returns the number of transmitted lines. PD modes pack two source
// lines into one transmitted line; an odd trailing source line is dropped.
func (d *Descriptor) Lines() int {
	if d.Family == FamilyPD {
		return d.Height / 2
	}
	return d.Height
}

// descriptors lists every supported mode, in the order of the published
// mode table. The slice is never mutated after init.
var descriptors = []Descriptor{
	{Name: "Robot8BW", VISCode: 0x02, Width: 160, Height: 120, SyncMS: 7.0,
		Family: FamilyGrayscale, ScanMS: 60.0},
	{Name: "Robot24BW", VISCode: 0x0A, Width: 320, Height: 240, SyncMS: 7.0,
		Family: FamilyGrayscale, ScanMS: 93.0},
	{Name: "MartinM1", VISCode: 0x2C, Width: 320, Height: 256, SyncMS: 4.862,
		Family: FamilyMartin, ScanMS: 146.432, GapMS: 0.572},
	{Name: "MartinM2", VISCode: 0x28, Width: 160, Height: 256, SyncMS: 4.862,
		Family: FamilyMartin, ScanMS: 73.216, GapMS: 0.572},
	{Name: "ScottieS1", VISCode: 0x3C, Width: 320, Height: 256, SyncMS: 0,
		Family: FamilyScottie, ScanMS: 136.74, GapMS: 1.5, SyncBeforeRedMS: 9.0},
	{Name: "ScottieS2", VISCode: 0x38, Width: 160, Height: 256, SyncMS: 0,
		Family: FamilyScottie, ScanMS: 86.564, GapMS: 1.5, SyncBeforeRedMS: 9.0},
	{Name: "Robot36", VISCode: 0x08, Width: 320, Height: 240, SyncMS: 0,
		Family: FamilyRobot36, YScanMS: 88.0, CScanMS: 44.0, GapMS: 4.5,
		PorchMS: 1.5, SyncPorchMS: 3.0},
	{Name: "PD90", VISCode: 0x63, Width: 320, Height: 256, SyncMS: 20.0,
		Family: FamilyPD, PorchMS: 2.08, PixelMS: 0.532},
	{Name: "PD120", VISCode: 0x5F, Width: 640, Height: 496, SyncMS: 20.0,
		Family: FamilyPD, PorchMS: 2.08, PixelMS: 0.190},
	{Name: "PD160", VISCode: 0x62, Width: 512, Height: 400, SyncMS: 20.0,
		Family: FamilyPD, PorchMS: 2.08, PixelMS: 0.382},
	{Name: "PD180", VISCode: 0x60, Width: 640, Height: 496, SyncMS: 20.0,
		Family: FamilyPD, PorchMS: 2.08, PixelMS: 0.286},
	{Name: "PD240", VISCode: 0x61, Width: 640, Height: 496, SyncMS: 20.0,
		Family: FamilyPD, PorchMS: 2.08, PixelMS: 0.382},
	{Name: "PD290", VISCode: 0x5E, Width: 800, Height: 616, SyncMS: 20.0,
		Family: FamilyPD, PorchMS: 2.08, PixelMS: 0.286},
}

// Count returns the number of supported modes.
func Count() int {
	return len(descriptors)
}

// Get returns the descriptor at index i in table order.
// It panics if i is out of range, like a slice access would.
func Get(i int) Descriptor {
	return descriptors[i]
}

// ByName looks up a descriptor by its canonical name.
func ByName(name string) (Descriptor, bool) {
	for _, d := range descriptors {
		if d.Name == name {
			return d, true
		}
	}
	return Descriptor{}, false
}
