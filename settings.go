package phys2d

import (
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Settings tune a World. They are read once at construction.
type Settings struct {
	Gravity     Vector  `yaml:"gravity"`
	PushFactor  float64 `yaml:"push_factor"`
	Iterations  int     `yaml:"iterations"`
	Friction    float64 `yaml:"friction"`
	Restitution float64 `yaml:"restitution"`
	// Approach speeds below this do not bounce.
	RestitutionThreshold float64 `yaml:"restitution_threshold"`
	// Penetration allowed before position correction kicks in.
	Slop float64 `yaml:"slop"`
	// Solve islands on separate goroutines.
	ParallelIslands bool `yaml:"parallel_islands"`
	// "sap" or "bbtree".
	BroadPhase string `yaml:"broad_phase"`
}

func DefaultSettings() Settings {
	return Settings{
		Gravity:              Vector{0, -9.8},
		PushFactor:           0.6,
		Iterations:           50,
		Friction:             0.5,
		Restitution:          0.5,
		RestitutionThreshold: RESTITUTION_THRESHOLD,
		Slop:                 CONTACT_SLOP,
		BroadPhase:           BROAD_PHASE_SAP,
	}
}

func (s Settings) Validate() error {
	switch {
	case math.IsNaN(s.Gravity.X) || math.IsNaN(s.Gravity.Y) || math.IsInf(s.Gravity.X, 0) || math.IsInf(s.Gravity.Y, 0):
		return errors.Wrapf(ErrInvalidSettings, "gravity %v is not finite", s.Gravity)
	case s.Iterations < 1:
		return errors.Wrapf(ErrInvalidSettings, "iterations must be positive, got %d", s.Iterations)
	case s.PushFactor < 0 || s.PushFactor > 1:
		return errors.Wrapf(ErrInvalidSettings, "push factor must be within [0, 1], got %v", s.PushFactor)
	case s.Friction < 0:
		return errors.Wrapf(ErrInvalidSettings, "friction must not be negative, got %v", s.Friction)
	case s.Restitution < 0 || s.Restitution > 1:
		return errors.Wrapf(ErrInvalidSettings, "restitution must be within [0, 1], got %v", s.Restitution)
	case s.RestitutionThreshold < 0:
		return errors.Wrapf(ErrInvalidSettings, "restitution threshold must not be negative, got %v", s.RestitutionThreshold)
	case s.Slop < 0:
		return errors.Wrapf(ErrInvalidSettings, "slop must not be negative, got %v", s.Slop)
	case s.BroadPhase != BROAD_PHASE_SAP && s.BroadPhase != BROAD_PHASE_BBTREE:
		return errors.Wrapf(ErrInvalidSettings, "unknown broad phase %q", s.BroadPhase)
	}
	return nil
}

const (
	BROAD_PHASE_SAP    = "sap"
	BROAD_PHASE_BBTREE = "bbtree"
)

func (s Settings) newBroadPhase() BroadPhase {
	if s.BroadPhase == BROAD_PHASE_BBTREE {
		return NewBBTree()
	}
	return NewSweepAndPrune()
}

// ParseSettings overlays YAML on the defaults.
func ParseSettings(data []byte) (Settings, error) {
	s := DefaultSettings()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, errors.Wrap(err, "phys2d: decoding settings")
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, errors.Wrapf(err, "phys2d: reading settings %s", path)
	}
	s, err := ParseSettings(data)
	if err != nil {
		return Settings{}, errors.Wrapf(err, "phys2d: loading %s", path)
	}
	return s, nil
}
