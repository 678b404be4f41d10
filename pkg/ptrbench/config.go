// Package ptrbench times the tether handle types against stdlib pointer
// baselines across payload shapes. Scenarios come from compiled-in
// defaults or a yaml file; results carry per-op wall time and allocation
// counts so handle overhead stays visible release to release.
package ptrbench

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	ErrNoScenarios    = errors.New("ptrbench: no scenarios configured")
	ErrUnknownHandle  = errors.New("ptrbench: unknown handle kind")
	ErrUnknownPayload = errors.New("ptrbench: unknown payload shape")
	ErrBadIterations  = errors.New("ptrbench: iterations must be positive")
)

// Handle kinds.
const (
	HandleRaw      = "raw"      // bare *T, the floor every other kind is compared to
	HandleOwned    = "owned"    // tether.Owned: payload + control block, two allocations
	HandleSealed   = "sealed"   // tether.Sealed: co-allocated cell, one allocation
	HandleObserver = "observer" // observe + liveness check + dispose against a live owner
)

// Payload shapes, mirroring the machine-word / string / large-array spread
// the original speed benchmark used.
const (
	PayloadWord  = "word"
	PayloadText  = "text"
	PayloadBlock = "block"
)

// Scenario is one timed loop: a handle kind over a payload shape.
type Scenario struct {
	Name       string `yaml:"name"`
	Handle     string `yaml:"handle"`
	Payload    string `yaml:"payload"`
	Iterations int    `yaml:"iterations"`
}

// Config is the full benchmark plan.
type Config struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

const defaultIterations = 1_000_000

// DefaultConfig returns the full handle x payload cross product.
func DefaultConfig() Config {
	handles := []string{HandleRaw, HandleOwned, HandleSealed, HandleObserver}
	payloads := []string{PayloadWord, PayloadText, PayloadBlock}

	var cfg Config
	for _, h := range handles {
		for _, p := range payloads {
			iters := defaultIterations
			if p == PayloadBlock {
				// 256 KiB payloads; keep wall time sane
				iters = defaultIterations / 100
			}
			cfg.Scenarios = append(cfg.Scenarios, Scenario{
				Name:       h + "/" + p,
				Handle:     h,
				Payload:    p,
				Iterations: iters,
			})
		}
	}
	return cfg
}

// LoadConfig reads a yaml scenario file. Unknown fields are rejected so a
// typo in a scenario file fails loudly instead of silently benchmarking
// the wrong thing.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("ptrbench: read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes and validates yaml scenario data.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("ptrbench: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the plan before any timing starts.
func (c Config) Validate() error {
	if len(c.Scenarios) == 0 {
		return ErrNoScenarios
	}
	for _, s := range c.Scenarios {
		switch s.Handle {
		case HandleRaw, HandleOwned, HandleSealed, HandleObserver:
		default:
			return fmt.Errorf("%w: %q in scenario %q", ErrUnknownHandle, s.Handle, s.Name)
		}
		switch s.Payload {
		case PayloadWord, PayloadText, PayloadBlock:
		default:
			return fmt.Errorf("%w: %q in scenario %q", ErrUnknownPayload, s.Payload, s.Name)
		}
		if s.Iterations <= 0 {
			return fmt.Errorf("%w: scenario %q", ErrBadIterations, s.Name)
		}
	}
	return nil
}
