package cli

import (
	"strings"

	"github.com/faiface/beep"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/handegar/tas2505/dac"
	"github.com/handegar/tas2505/reader"
	"github.com/handegar/tas2505/settings"
	"github.com/handegar/tas2505/utils"
	"github.com/handegar/tas2505/writer"
)

var g711Law string

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render audio through the playback path the registers describe",
	Long: `Read the DAC and speaker registers, then pass --in through the modelled
path (channel selection, DAC volume, speaker attenuation and gain, word
length and clipping) into --out, or to the speaker with --play.

Input is a WAV file at a rate and width the audio interface accepts, or a
raw 8 kHz G.711 file with --g711 alaw|ulaw.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVar(&settings.InputWav, "in", settings.InputWav, "input file")
	renderCmd.Flags().StringVar(&settings.OutputWav, "out", settings.OutputWav, "output wav file")
	renderCmd.Flags().BoolVar(&settings.Stream, "play", settings.Stream, "play instead of writing --out")
	renderCmd.Flags().StringVar(&g711Law, "g711", "", "read --in as raw G.711 (alaw or ulaw)")
}

func openInput() (beep.Streamer, beep.Format, func(), error) {
	switch strings.ToLower(g711Law) {
	case "":
		s, f, err := reader.ReadWAV(settings.InputWav)
		if err != nil {
			return nil, f, nil, err
		}
		return s, f, func() { s.Close() }, nil
	case "alaw", "a":
		s, f, err := reader.ReadG711(settings.InputWav, true)
		return s, f, func() {}, err
	case "ulaw", "mulaw", "u":
		s, f, err := reader.ReadG711(settings.InputWav, false)
		return s, f, func() {}, err
	}
	return nil, beep.Format{}, nil, errors.Errorf("--g711 must be alaw or ulaw, not %q", g711Law)
}

func runRender(cmd *cobra.Command, args []string) error {
	m, err := openMap(cmd.Context())
	if err != nil {
		return err
	}
	defer closeMap(m)

	cfg, err := dac.ConfigFrom(m)
	if err != nil {
		return err
	}
	log := logrus.WithFields(logrus.Fields{
		"path": cfg.Path,
		"gain": utils.DBString(cfg.GainDB()),
		"bits": cfg.WordLen.Bits(),
	})
	if !cfg.Audible() {
		log.Warn("playback path is silent")
	}

	src, format, done, err := openInput()
	if err != nil {
		return err
	}
	defer done()

	out := cfg.Streamer(src)
	if settings.Stream {
		err = writer.Play(cmd.Context(), format, out)
	} else {
		_, err = writer.SaveAsWAV(settings.OutputWav, format, out)
	}
	if out.Clipped > 0 {
		log.WithField("samples", out.Clipped).Warn("output clipped")
	}
	if err == nil {
		log.WithField("peak", utils.DBString(utils.LinearToDB(out.Peak))).Info("rendered")
	}
	return err
}
