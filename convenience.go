package sstv

// EncodeToPCM is a convenience function for one-shot encoding: it
// creates an encoder for the named mode and drains it into a slice.
func EncodeToPCM(modeName string, img *Image, sampleRate, bitDepth int) ([]int, error) {
	m, err := LookupMode(modeName)
	if err != nil {
		return nil, err
	}
	enc, err := New(m, img, &Config{
		SampleRate: sampleRate,
		BitDepth:   bitDepth,
	})
	if err != nil {
		return nil, err
	}
	return enc.EncodeAll(), nil
}

// NewDefault creates an encoder with the default configuration:
// 11025 Hz, 16-bit, no VOX preamble.
func NewDefault(m Mode, img *Image) (*Encoder, error) {
	return New(m, img, nil)
}

// NewWithCallsign creates an encoder that appends the callsign as an
// FSKID trailer, the common configuration for identified transmissions.
func NewWithCallsign(m Mode, img *Image, cfg *Config, callsign string) (*Encoder, error) {
	enc, err := New(m, img, cfg)
	if err != nil {
		return nil, err
	}
	if callsign != "" {
		if err := enc.AddFSKIDText(callsign); err != nil {
			return nil, err
		}
	}
	return enc, nil
}
