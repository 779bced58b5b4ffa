package writer

import (
	"context"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// CountingStreamer counts what passes through it.
type CountingStreamer struct {
	Streamer       beep.Streamer
	SamplesWritten int
}

func (cs *CountingStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = cs.Streamer.Stream(samples)
	cs.SamplesWritten += n
	return n, ok
}

func (cs *CountingStreamer) Err() error {
	return cs.Streamer.Err()
}

// SaveAsWAV drains s into a WAV file and returns the number of samples
// written.
func SaveAsWAV(filename string, wavFormat beep.Format, s beep.Streamer) (int, error) {
	log := logrus.WithFields(logrus.Fields{"component": "writer", "file": filename})
	out, err := os.Create(filename)
	if err != nil {
		return 0, errors.Wrap(err, "creating output file")
	}
	defer out.Close()

	cs := &CountingStreamer{Streamer: s}
	if err := wav.Encode(out, cs, wavFormat); err != nil {
		return cs.SamplesWritten, errors.Wrap(err, "writing samples")
	}
	log.WithFields(logrus.Fields{
		"samples":  cs.SamplesWritten,
		"channels": wavFormat.NumChannels,
		"rate":     int(wavFormat.SampleRate),
	}).Info("wav written")
	return cs.SamplesWritten, nil
}

// Play streams s to the default audio device and returns when it ends or
// ctx is cancelled.
func Play(ctx context.Context, format beep.Format, s beep.Streamer) error {
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		return errors.Wrap(err, "opening audio device")
	}
	defer speaker.Close()

	done := make(chan struct{})
	speaker.Play(beep.Seq(s, beep.Callback(func() { close(done) })))
	select {
	case <-done:
		return s.Err()
	case <-ctx.Done():
		speaker.Clear()
		return ctx.Err()
	}
}
