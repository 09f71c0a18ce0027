// wiredump decodes a capture of reference-protocol frames and prints one
// structured log line per message. It demonstrates the caller-side
// recovery policy the stack itself never applies: buffer more on
// NotEnoughData, drop one byte and resynchronize on protocol errors,
// skip the id span on unknown ids.
package main

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/danmuck/wirestack/config"
	"github.com/danmuck/wirestack/demo"
	"github.com/danmuck/wirestack/message"
	"github.com/danmuck/wirestack/stack"
	"github.com/danmuck/wirestack/wire"
)

func main() {
	var (
		inPath   = flag.String("in", "", "capture file (binary, or hex with -hex)")
		cfgPath  = flag.String("config", "", "optional stack config (toml)")
		hexInput = flag.Bool("hex", false, "treat input as hex text")
		trace    = flag.Bool("trace", false, "enable per-layer trace logging")
	)
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Str("app", "wiredump").Str("session", uuid.NewString()).Logger()

	if *inPath == "" {
		log.Fatal().Msg("missing -in capture file")
	}

	buf, err := os.ReadFile(*inPath)
	if err != nil {
		log.Fatal().Err(err).Msg("read capture")
	}
	if *hexInput {
		clean := strings.Map(func(r rune) rune {
			if strings.ContainsRune(" \t\r\n", r) {
				return -1
			}
			return r
		}, string(buf))
		buf, err = hex.DecodeString(clean)
		if err != nil {
			log.Fatal().Err(err).Msg("decode hex capture")
		}
	}

	s, err := buildStack(*cfgPath, *trace, log)
	if err != nil {
		log.Fatal().Err(err).Msg("build stack")
	}

	frames, dropped := dump(log, s, buf)
	log.Info().Int("frames", frames).Int("bytes_dropped", dropped).Msg("capture done")
}

func buildStack(cfgPath string, trace bool, log zerolog.Logger) (*stack.Stack, error) {
	var opts []stack.Option
	if trace {
		opts = append(opts, stack.WithLogger(log))
	}
	if cfgPath == "" {
		return demo.NewStack(opts...)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	return cfg.Build(demo.NewRegistry(), opts...)
}

func dump(log zerolog.Logger, s *stack.Stack, buf []byte) (frames, dropped int) {
	off := 0
	for off < len(buf) {
		h, consumed, err := s.Read(buf[off:])
		switch {
		case err == nil:
			m := h.Msg()
			log.Info().
				Int("offset", off).
				Uint32("id", uint32(m.ID())).
				Str("msg", m.Name()).
				Int("len", consumed).
				Bool("valid", message.Valid(m)).
				Str("fields", describe(m)).
				Msg("frame")
			h.Release()
			frames++
			off += consumed
		case errors.Is(err, wire.ErrNotEnoughData):
			log.Warn().Int("offset", off).Int("trailing", len(buf)-off).Msg("truncated trailing frame")
			return frames, dropped
		case errors.Is(err, stack.ErrInvalidMsgID):
			log.Warn().Int("offset", off).Int("skipped", consumed).Err(err).Msg("unknown message id")
			off += consumed
		default:
			// Structural mismatch: resynchronize one byte at a time.
			off++
			dropped++
		}
	}
	return frames, dropped
}

func describe(m message.Message) string {
	parts := make([]string, 0, len(m.Fields()))
	for _, f := range m.Fields() {
		parts = append(parts, fmt.Sprintf("%T(len=%d)", f, f.Len()))
	}
	return strings.Join(parts, " ")
}
