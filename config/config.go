// Package config loads framing-stack parameters from TOML and composes
// a Stack from them, so deployments can change wire geometry without
// recompiling.
package config

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/wirestack/checksum"
	"github.com/danmuck/wirestack/message"
	"github.com/danmuck/wirestack/stack"
	"github.com/danmuck/wirestack/wire"
)

// Config is one protocol's wire geometry.
type Config struct {
	Sync          []byte
	Order         wire.ByteOrder
	SizeWidth     int
	IDWidth       int
	ChecksumWidth int
	Checksum      checksum.Calculator
	ChecksumFrom  stack.Coverage
	ChecksumSeed  uint64
	InPlace       bool
}

// Default is the reference protocol geometry: 0xAB 0xBC sync, 2-byte
// length, 1-byte id, trailing 16-bit additive checksum over length
// through payload, big-endian.
func Default() Config {
	return Config{
		Sync:          []byte{0xAB, 0xBC},
		Order:         wire.BigEndian,
		SizeWidth:     2,
		IDWidth:       1,
		ChecksumWidth: 2,
		Checksum:      checksum.Additive{Width: 2},
		ChecksumFrom:  stack.CoverFromSize,
	}
}

type fileConfig struct {
	Sync          string `toml:"sync"`
	Endianness    string `toml:"endianness"`
	SizeWidth     int    `toml:"size_width"`
	IDWidth       int    `toml:"id_width"`
	Checksum      string `toml:"checksum"`
	ChecksumWidth int    `toml:"checksum_width"`
	ChecksumFrom  string `toml:"checksum_from"`
	ChecksumSeed  uint64 `toml:"checksum_seed"`
	InPlace       bool   `toml:"in_place"`
}

// Load reads path and overlays whatever it defines onto the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load stack config: %w", err)
	}

	if meta.IsDefined("sync") {
		b, err := hex.DecodeString(strings.TrimSpace(raw.Sync))
		if err != nil {
			return Config{}, fmt.Errorf("parse sync marker: %w", err)
		}
		if len(b) == 0 {
			return Config{}, fmt.Errorf("parse sync marker: empty")
		}
		cfg.Sync = b
	}

	if meta.IsDefined("endianness") {
		switch strings.ToLower(strings.TrimSpace(raw.Endianness)) {
		case "big":
			cfg.Order = wire.BigEndian
		case "little":
			cfg.Order = wire.LittleEndian
		default:
			return Config{}, fmt.Errorf("parse endianness: %q", raw.Endianness)
		}
	}

	if meta.IsDefined("size_width") {
		if err := checkWidth("size_width", raw.SizeWidth); err != nil {
			return Config{}, err
		}
		cfg.SizeWidth = raw.SizeWidth
	}

	if meta.IsDefined("id_width") {
		if err := checkWidth("id_width", raw.IDWidth); err != nil {
			return Config{}, err
		}
		cfg.IDWidth = raw.IDWidth
	}

	if meta.IsDefined("checksum") {
		calc, err := checksum.ByName(strings.TrimSpace(raw.Checksum))
		if err != nil {
			return Config{}, err
		}
		cfg.Checksum = calc
	}

	if meta.IsDefined("checksum_width") {
		if err := checkWidth("checksum_width", raw.ChecksumWidth); err != nil {
			return Config{}, err
		}
		cfg.ChecksumWidth = raw.ChecksumWidth
	}

	if meta.IsDefined("checksum_from") {
		switch strings.ToLower(strings.TrimSpace(raw.ChecksumFrom)) {
		case "size":
			cfg.ChecksumFrom = stack.CoverFromSize
		case "id":
			cfg.ChecksumFrom = stack.CoverFromID
		default:
			return Config{}, fmt.Errorf("parse checksum_from: %q", raw.ChecksumFrom)
		}
	}

	if meta.IsDefined("checksum_seed") {
		cfg.ChecksumSeed = raw.ChecksumSeed
	}

	if meta.IsDefined("in_place") {
		cfg.InPlace = raw.InPlace
	}

	return cfg, nil
}

func checkWidth(name string, v int) error {
	if v < 1 || v > wire.MaxIntWidth {
		return fmt.Errorf("%s out of range: %d", name, v)
	}
	return nil
}

// Build composes a Stack with this geometry over reg.
func (c Config) Build(reg *message.Registry, opts ...stack.Option) (*stack.Stack, error) {
	layers := stack.NewSyncPrefix(c.Sync,
		stack.NewSize(c.SizeWidth, c.Order,
			stack.NewMsgID(reg, c.IDWidth, c.Order,
				stack.NewChecksumSeeded(c.Checksum, c.ChecksumWidth, c.Order, c.ChecksumFrom, c.ChecksumSeed,
					stack.NewPayload()))))
	if c.InPlace {
		opts = append([]stack.Option{stack.WithInPlaceAllocation()}, opts...)
	}
	return stack.New(layers, reg, opts...)
}
