// Command aprstx turns one line of info text (source, destination and
// path come from flags or the config file; the line is sent verbatim as
// the information field) into a transmittable sample stream, in the
// spirit of direwolf's
// gen_packets, but targeting real-time IQ/PCM sinks -- file, sound
// card playback, serial, PTY, or network -- instead of a .wav writer.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lestrrat-go/strftime"
	"github.com/spf13/pflag"

	"github.com/n0call/aprstx/internal/afsk"
	"github.com/n0call/aprstx/internal/ax25"
	"github.com/n0call/aprstx/internal/config"
	"github.com/n0call/aprstx/internal/keying"
	"github.com/n0call/aprstx/internal/logging"
	"github.com/n0call/aprstx/internal/pipeline"
	"github.com/n0call/aprstx/internal/position"
	"github.com/n0call/aprstx/internal/sink"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "aprstx:", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	flags := pflag.NewFlagSet("aprstx", pflag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		configPath   = flags.StringP("config", "c", "", "YAML config file overlaying the built-in defaults.")
		source       = flags.StringP("source", "S", "", "Source callsign, e.g. N0CALL-1.")
		destination  = flags.StringP("destination", "D", "", "Destination TOCALL; empty resolves to APRS.")
		path         = flags.StringP("path", "p", "", "Comma-separated digipeater path, e.g. WIDE1-1,WIDE2-1.")
		format       = flags.StringP("format", "f", "", "Output format: iq_s8, iq_f32, or pcm_f32.")
		deviation    = flags.Float64P("deviation", "d", 0, "FM peak deviation in Hz.")
		interpFactor = flags.IntP("interpolation", "L", 0, "Polyphase interpolation factor.")
		preamble     = flags.IntP("preamble-flags", "P", 0, "Number of 0x7E flag bytes before and after the frame.")
		markOnOne    = flags.Bool("mark-on-one", true, "AFSK polarity: a line symbol of 1 selects the mark tone.")
		logLevel     = flags.StringP("log-level", "v", "", "Log level: debug, info, warn, error.")
		help         = flags.BoolP("help", "h", false, "Display help text.")

		sinkKind = flags.String("sink", "file", "Output sink: file, playback, serial, pty, or network.")
		output   = flags.StringP("output", "o", "-", "File sink path (strftime patterns like %Y%m%d-%H%M%S expand against the current time), or - for stdout.")

		serialDevice = flags.String("serial-device", "", "Serial device path for --sink=serial, e.g. /dev/ttyUSB0.")
		serialBaud   = flags.Int("serial-baud", 9600, "Serial baud rate for --sink=serial.")

		networkListen   = flags.String("network-listen", ":7355", "Listen address for --sink=network.")
		networkAnnounce = flags.String("network-announce", "", "mDNS/DNS-SD service instance name to announce for --sink=network; empty skips announcement.")

		gpioLine = flags.Int("ptt-gpio-line", -1, "GPIO line offset to key PTT on; -1 disables GPIO keying.")
		gpioChip = flags.String("ptt-gpio-chip", "/dev/gpiochip0", "GPIO chip device for --ptt-gpio-line.")

		hamlibModel = flags.Int("ptt-hamlib-model", -1, "Hamlib rig model number to key PTT through; -1 disables Hamlib keying.")
		hamlibPort  = flags.String("ptt-hamlib-port", "/dev/ttyUSB0", "Rig control port for --ptt-hamlib-model.")

		posLat     = flags.Float64("position-lat", 0, "Latitude in decimal degrees; with --position-lon, sends a position report instead of free text.")
		posLon     = flags.Float64("position-lon", 0, "Longitude in decimal degrees; with --position-lat, sends a position report instead of free text.")
		posComment = flags.String("position-comment", "", "Comment text appended to the position report.")
		posUTM     = flags.Bool("position-utm", false, "Append a UTM zone/easting/northing reference to the position comment.")
	)

	flags.Usage = func() {
		fmt.Fprintln(stderr, "Usage: aprstx [flags] [info-text]")
		fmt.Fprintln(stderr, "  With no info-text argument and no --position-lat/--position-lon, each line of stdin is sent as a separate frame.")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return err
	}
	if *help {
		flags.Usage()
		return nil
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			return err
		}
	}
	applyFlagOverrides(&cfg, flags, *source, *destination, *path, *format, *deviation, *interpFactor, *preamble, *markOnOne, *logLevel)

	logger := logging.New(cfg.LogLevel)

	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return err
	}
	opts.Logger = logger

	keyer, closeKeyer, err := openKeyer(*gpioChip, *gpioLine, *hamlibModel, *hamlibPort)
	if err != nil {
		return err
	}
	if keyer != nil {
		defer closeKeyer()
		opts.Keyer = keyer
	}

	out, closeOut, err := openSink(*sinkKind, opts, *output, *serialDevice, *serialBaud, *networkListen, *networkAnnounce, stdout, logger)
	if err != nil {
		return err
	}
	defer closeOut()

	dest, err := parseAddress(cfg.Destination)
	if err != nil {
		return err
	}
	src, err := parseAddress(cfg.Source)
	if err != nil {
		return err
	}
	digiPath, err := parsePathFlag(cfg.Path)
	if err != nil {
		return err
	}

	if flags.Changed("position-lat") || flags.Changed("position-lon") {
		info, err := positionInfo(*posLat, *posLon, *posComment, *posUTM)
		if err != nil {
			return err
		}
		return sendOne(out, opts, dest, src, digiPath, info, logger)
	}

	if positional := flags.Args(); len(positional) > 0 {
		return sendOne(out, opts, dest, src, digiPath, strings.Join(positional, " "), logger)
	}

	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if err := sendOne(out, opts, dest, src, digiPath, line, logger); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// positionInfo renders a position report's information-field text, the
// way a caller driving a GPS-fed beacon would produce one frame's info
// without hand-formatting degree-minute strings.
func positionInfo(lat, lon float64, comment string, includeUTM bool) (string, error) {
	if includeUTM {
		utm, err := position.FormatUTM(lat, lon)
		if err != nil {
			return "", err
		}
		if comment != "" {
			comment = comment + " " + utm
		} else {
			comment = utm
		}
	}

	r := position.Report{Latitude: lat, Longitude: lon, Comment: comment}
	return r.Format()
}

func sendOne(out sink.Sink, opts pipeline.Options, dest, src ax25.Address, digiPath []ax25.Address, info string, logger *log.Logger) error {
	req := pipeline.Request{
		Destination: dest,
		Source:      src,
		Path:        digiPath,
		Info:        []byte(info),
	}
	if err := pipeline.Generate(req, out, opts); err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	logger.Info("transmitted frame", "info", info)
	return nil
}

func applyFlagOverrides(cfg *config.Config, flags *pflag.FlagSet, source, destination, path, format string, deviation float64, interpFactor, preamble int, markOnOne bool, logLevel string) {
	if flags.Changed("source") {
		cfg.Source = source
	}
	if flags.Changed("destination") {
		cfg.Destination = destination
	}
	if flags.Changed("path") {
		cfg.Path = path
	}
	if flags.Changed("format") {
		cfg.Format = format
	}
	if flags.Changed("deviation") {
		cfg.Deviation = deviation
	}
	if flags.Changed("interpolation") {
		cfg.InterpolationFactor = interpFactor
	}
	if flags.Changed("preamble-flags") {
		cfg.PreambleFlags = preamble
	}
	if flags.Changed("mark-on-one") {
		cfg.MarkOnOne = markOnOne
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
}

func optionsFromConfig(cfg config.Config) (pipeline.Options, error) {
	opts := pipeline.NewOptions()
	opts.Deviation = cfg.Deviation
	opts.InterpolationFactor = cfg.InterpolationFactor
	opts.PreambleFlags = cfg.PreambleFlags
	opts.MarkOnOne = cfg.MarkOnOne

	switch cfg.Format {
	case "", "iq_s8":
		opts.Format = sink.IQS8
	case "iq_f32":
		opts.Format = sink.IQF32
	case "pcm_f32":
		opts.Format = sink.PCMF32
	default:
		return pipeline.Options{}, fmt.Errorf("aprstx: unknown format %q", cfg.Format)
	}
	return opts, nil
}

// openKeyer opens at most one PTT backend: GPIO takes priority over
// Hamlib when both are configured, since a single transmission only
// ever keys one PTT path.
func openKeyer(gpioChip string, gpioLine, hamlibModel int, hamlibPort string) (keying.Keyer, func(), error) {
	if gpioLine >= 0 {
		k, err := keying.OpenGPIOKeyer(gpioChip, gpioLine, true)
		if err != nil {
			return nil, nil, fmt.Errorf("open gpio ptt keyer: %w", err)
		}
		return k, func() { k.Close() }, nil
	}

	if hamlibModel >= 0 {
		k, err := keying.OpenHamlibKeyer(hamlibModel, hamlibPort)
		if err != nil {
			return nil, nil, fmt.Errorf("open hamlib ptt keyer: %w", err)
		}
		return k, func() { k.Close() }, nil
	}

	return nil, nil, nil
}

// openSink opens the output transport selected by kind, grounded on
// direwolf's own multiple audio/KISS output paths (serial_port.go,
// kiss.go's pty allocation, dns_sd.go's network announcement, and the
// PortAudio monitoring path) now reachable from the command line
// instead of only from package sink's own tests.
func openSink(kind string, opts pipeline.Options, outputPath, serialDevice string, serialBaud int, networkListen, networkAnnounce string, stdout io.Writer, logger *log.Logger) (sink.Sink, func(), error) {
	switch kind {
	case "", "file":
		return openFileSink(outputPath, stdout)

	case "playback":
		if opts.Format != sink.PCMF32 {
			return nil, nil, fmt.Errorf("aprstx: --sink=playback requires --format=pcm_f32")
		}
		s, err := sink.NewPlaybackSink(afsk.SampleRate)
		if err != nil {
			return nil, nil, fmt.Errorf("aprstx: open playback sink: %w", err)
		}
		return s, func() { s.Close() }, nil

	case "serial":
		if serialDevice == "" {
			return nil, nil, fmt.Errorf("aprstx: --sink=serial requires --serial-device")
		}
		s, err := sink.OpenSerialSink(serialDevice, serialBaud)
		if err != nil {
			return nil, nil, fmt.Errorf("aprstx: open serial sink: %w", err)
		}
		return s, func() { s.Close() }, nil

	case "pty":
		s, err := sink.OpenPTYSink()
		if err != nil {
			return nil, nil, fmt.Errorf("aprstx: open pty sink: %w", err)
		}
		logger.Info("pty sink ready", "slave", s.SlaveName())
		return s, func() { s.Close() }, nil

	case "network":
		s, err := sink.ListenNetworkSink(networkListen)
		if err != nil {
			return nil, nil, fmt.Errorf("aprstx: open network sink: %w", err)
		}
		if networkAnnounce != "" {
			if err := s.Announce(context.Background(), networkAnnounce); err != nil {
				logger.Warn("dns-sd announcement failed", "err", err)
			}
		}
		logger.Info("waiting for network sink client", "addr", networkListen)
		if err := s.Accept(); err != nil {
			_ = s.Close()
			return nil, nil, fmt.Errorf("aprstx: accept network sink client: %w", err)
		}
		return s, func() { s.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("aprstx: unknown sink %q", kind)
	}
}

// openFileSink creates the output file at path, expanding any strftime
// directives (e.g. "capture-%Y%m%d-%H%M%S.iq") against the current
// time first, the way direwolf's xmit.go/tq.go name per-run sample
// dumps and log files.
func openFileSink(path string, stdout io.Writer) (sink.Sink, func(), error) {
	if path == "-" || path == "" {
		return stdout, func() {}, nil
	}

	expanded, err := strftime.Format(path, time.Now())
	if err != nil {
		return nil, nil, fmt.Errorf("aprstx: expand output path %q: %w", path, err)
	}

	f, err := os.Create(expanded)
	if err != nil {
		return nil, nil, fmt.Errorf("aprstx: open output: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func parseAddress(s string) (ax25.Address, error) {
	if s == "" {
		return ax25.Address{}, nil
	}
	return ax25.ParseAddress(s)
}

func parsePathFlag(s string) ([]ax25.Address, error) {
	return ax25.ParsePath(s)
}
