package regs

// ALSA rate bits (SNDRV_PCM_RATE_*).
type RateMask uint32

const (
	Rate5512 RateMask = 1 << iota
	Rate8000
	Rate11025
	Rate16000
	Rate22050
	Rate32000
	Rate44100
	Rate48000
	Rate64000
	Rate88200
	Rate96000
	Rate176400
	Rate192000
)

var rateHz = []struct {
	bit RateMask
	hz  int
}{
	{Rate5512, 5512},
	{Rate8000, 8000},
	{Rate11025, 11025},
	{Rate16000, 16000},
	{Rate22050, 22050},
	{Rate32000, 32000},
	{Rate44100, 44100},
	{Rate48000, 48000},
	{Rate64000, 64000},
	{Rate88200, 88200},
	{Rate96000, 96000},
	{Rate176400, 176400},
	{Rate192000, 192000},
}

// Rate8000To96000 is SNDRV_PCM_RATE_8000_96000.
const Rate8000To96000 = Rate8000 | Rate11025 | Rate16000 | Rate22050 |
	Rate32000 | Rate44100 | Rate48000 | Rate64000 | Rate88200 | Rate96000

// Rates are the sample rates the digital audio interface accepts.
const Rates = Rate8000To96000

// RateList returns the rates of m in Hz, ascending.
func (m RateMask) RateList() []int {
	var l []int
	for _, r := range rateHz {
		if m&r.bit != 0 {
			l = append(l, r.hz)
		}
	}
	return l
}

// SupportsRate reports whether hz is one of the discrete rates in m.
func (m RateMask) SupportsRate(hz int) bool {
	for _, r := range rateHz {
		if r.hz == hz {
			return m&r.bit != 0
		}
	}
	return false
}

// ALSA sample formats (SNDRV_PCM_FORMAT_*), the subset this codec cares about.
type Format uint

const (
	FormatS16LE Format = 2
	FormatS24LE Format = 6
	FormatS32LE Format = 10
)

// FormatMask holds format bits, 1 << Format.
type FormatMask uint64

func (f Format) Bit() FormatMask { return 1 << f }

const (
	FmtBitS16LE FormatMask = 1 << FormatS16LE
	FmtBitS24LE FormatMask = 1 << FormatS24LE
	FmtBitS32LE FormatMask = 1 << FormatS32LE
)

// Formats are the sample formats the digital audio interface accepts.
const Formats = FmtBitS16LE | FmtBitS24LE | FmtBitS32LE

// FormatForBits maps a little-endian sample width to its format.
func FormatForBits(bits int) (Format, bool) {
	switch bits {
	case 16:
		return FormatS16LE, true
	case 24:
		return FormatS24LE, true
	case 32:
		return FormatS32LE, true
	}
	return 0, false
}

// SupportsFormat reports whether m holds the little-endian format of the
// given sample width.
func (m FormatMask) SupportsFormat(bits int) bool {
	f, ok := FormatForBits(bits)
	return ok && m&f.Bit() != 0
}

func (f Format) String() string {
	switch f {
	case FormatS16LE:
		return "S16_LE"
	case FormatS24LE:
		return "S24_LE"
	case FormatS32LE:
		return "S32_LE"
	}
	return "UNKNOWN"
}

// FormatList names the formats of m.
func (m FormatMask) FormatList() []string {
	var l []string
	for _, f := range []Format{FormatS16LE, FormatS24LE, FormatS32LE} {
		if m&f.Bit() != 0 {
			l = append(l, f.String())
		}
	}
	return l
}
