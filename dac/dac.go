// Package dac models what the TAS2505 playback path does to a stream
// given the current register settings.
package dac

import (
	"math"

	"github.com/faiface/beep"

	"github.com/handegar/tas2505/regs"
	"github.com/handegar/tas2505/utils"
)

const (
	// Range of the DAC digital volume.
	DACVolMinDB = -63.5
	DACVolMaxDB = 24.0

	spkVol1Mute   = 0x7f
	spkVol1MaxAtt = 0x74
)

// Reader is the part of a register map the model needs.
type Reader interface {
	Read(r regs.Reg) (uint8, error)
}

// Config is the playback state of the chip.
type Config struct {
	Powered  bool
	Path     regs.DACPath
	Muted    bool
	Volume   uint8 // DACVOL, raw
	DriverOn bool
	SpkAtt   uint8 // SPKVOL1, raw
	SpkGain  regs.SpkGain
	WordLen  regs.WordLen
}

// ConfigFrom reads the playback registers.
func ConfigFrom(m Reader) (Config, error) {
	var c Config
	vals := map[regs.Reg]uint8{}
	for _, r := range []regs.Reg{regs.IFace1, regs.DACSetup1, regs.DACSetup2, regs.DACVol,
		regs.SpkAmpCtrl1, regs.SpkVol1, regs.SpkVol2} {
		v, err := m.Read(r)
		if err != nil {
			return c, err
		}
		vals[r] = v
	}
	c.WordLen = regs.WordLen(regs.FieldIFace1DataLen.Get(vals[regs.IFace1]))
	c.Powered = regs.FieldDACPower.Get(vals[regs.DACSetup1]) == 1
	c.Path = regs.DACPath(regs.FieldDACPathCtrl.Get(vals[regs.DACSetup1]))
	c.Muted = regs.FieldDACMute.Get(vals[regs.DACSetup2]) == 1
	c.Volume = vals[regs.DACVol]
	c.DriverOn = regs.SpkDrv(regs.FieldSpkDrv.Get(vals[regs.SpkAmpCtrl1])) == regs.SpkAmpCtrl1SpkDrvPWU
	c.SpkAtt = vals[regs.SpkVol1] & 0x7f
	c.SpkGain = regs.SpkGain(regs.FieldSpkGain.Get(vals[regs.SpkVol2]))
	return c, nil
}

// VolumeDB is the digital volume, clamped to the range the DAC accepts.
func (c Config) VolumeDB() float64 {
	db := utils.S8HalfDBToFloat(c.Volume)
	return math.Max(DACVolMinDB, math.Min(DACVolMaxDB, db))
}

// SpkAttDB is the speaker attenuation. Reserved codes above 0x74 act as
// the largest attenuation.
func (c Config) SpkAttDB() float64 {
	att := c.SpkAtt
	if att > spkVol1MaxAtt {
		att = spkVol1MaxAtt
	}
	return -0.5 * float64(att)
}

// Audible reports whether anything reaches the speaker.
func (c Config) Audible() bool {
	if !c.Powered || c.Muted || c.Path == regs.DACSetup1PathCtrlOff {
		return false
	}
	if !c.DriverOn || c.SpkAtt == spkVol1Mute {
		return false
	}
	_, ok := c.SpkGain.DB()
	return ok
}

// GainDB is the total gain from the interface to the speaker, or -Inf
// when nothing is audible.
func (c Config) GainDB() float64 {
	if !c.Audible() {
		return math.Inf(-1)
	}
	g, _ := c.SpkGain.DB()
	return c.VolumeDB() + c.SpkAttDB() + g
}

func (c Config) mix(s [2]float64) float64 {
	switch c.Path {
	case regs.DACSetup1PathCtrlLeft:
		return s[0]
	case regs.DACSetup1PathCtrlRight:
		return s[1]
	case regs.DACSetup1PathCtrlLRDiv2:
		return (s[0] + s[1]) / 2
	}
	return 0
}

// Stream is src as heard on the speaker.
type Stream struct {
	cfg     Config
	src     beep.Streamer
	gain    float64
	Clipped int     // samples clamped to full scale
	Peak    float64 // largest output magnitude so far
}

// Streamer wraps src with the current playback path: channel selection,
// gain, quantisation to the interface word length and clipping.
func (c Config) Streamer(src beep.Streamer) *Stream {
	return &Stream{cfg: c, src: src, gain: utils.DBToLinear(c.GainDB())}
}

func (s *Stream) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = s.src.Stream(samples)
	audible := s.cfg.Audible()
	q := NewSample(s.cfg.WordLen.Bits())
	for i := range samples[:n] {
		if !audible {
			samples[i] = [2]float64{}
			continue
		}
		_, clipped := q.SetFloat64(s.cfg.mix(samples[i]) * s.gain)
		if clipped {
			s.Clipped++
		}
		v := q.ToFloat64()
		s.Peak = math.Max(s.Peak, math.Abs(v))
		samples[i] = [2]float64{v, v}
	}
	return n, ok
}

func (s *Stream) Err() error { return s.src.Err() }
