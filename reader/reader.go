package reader

import (
	"io"
	"os"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"
	"github.com/zaf/g711"

	"github.com/handegar/tas2505/regs"
)

var (
	ErrUnsupportedRate   = errors.New("sample rate not supported by the audio interface")
	ErrUnsupportedFormat = errors.New("sample format not supported by the audio interface")
)

// G711Rate is the sample rate of raw G.711 files.
const G711Rate = beep.SampleRate(8000)

// CheckFormat rejects formats the TAS2505 audio interface cannot carry.
func CheckFormat(f beep.Format) error {
	if !regs.Rates.SupportsRate(int(f.SampleRate)) {
		return errors.Wrapf(ErrUnsupportedRate, "%d Hz", int(f.SampleRate))
	}
	if !regs.Formats.SupportsFormat(f.Precision * 8) {
		return errors.Wrapf(ErrUnsupportedFormat, "%d bit", f.Precision*8)
	}
	return nil
}

// ReadWAV opens a WAV file for playback through the codec. Closing the
// returned streamer closes the file.
func ReadWAV(filename string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, beep.Format{}, err
	}

	stream, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, format, errors.Wrapf(err, "decoding %s", filename)
	}
	if err := CheckFormat(format); err != nil {
		stream.Close()
		return nil, format, errors.Wrap(err, filename)
	}
	return stream, format, nil
}

// ReadG711 decodes a headerless 8 kHz G.711 file, A-law when alaw is
// set and µ-law otherwise, into 16 bit mono.
func ReadG711(filename string, alaw bool) (*SampleStreamer, beep.Format, error) {
	format := beep.Format{SampleRate: G711Rate, NumChannels: 1, Precision: 2}
	f, err := os.Open(filename)
	if err != nil {
		return nil, format, err
	}
	defer f.Close()

	s, err := DecodeG711(f, alaw)
	if err != nil {
		return nil, format, errors.Wrapf(err, "reading %s", filename)
	}
	return s, format, nil
}

func DecodeG711(r io.Reader, alaw bool) (*SampleStreamer, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	decode := g711.DecodeUlawFrame
	if alaw {
		decode = g711.DecodeAlawFrame
	}
	s := new(SampleStreamer)
	s.Data = make([][2]float64, len(raw))
	for i, b := range raw {
		v := float64(decode(b)) / 32768
		s.Data[i] = [2]float64{v, v}
	}
	return s, nil
}

// SampleStreamer plays back samples held in memory.
type SampleStreamer struct {
	Data     [][2]float64
	Position int
}

func (s *SampleStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.Position >= len(s.Data) {
		return 0, false
	}
	n = copy(samples, s.Data[s.Position:])
	s.Position += n
	return n, true
}

func (s *SampleStreamer) Err() error { return nil }

func (s *SampleStreamer) Len() int { return len(s.Data) }
