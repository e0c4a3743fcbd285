package simulation

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lao-tseu-is-alive/go-particle-flock/pkg/geometry"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tochemey/goakt/v3/log"
)

//go:embed config.schema.json
var configSchema string

type Config struct {
	// World Dimensions
	WorldWidth  float64 `json:"worldWidth" toml:"worldWidth"`
	WorldHeight float64 `json:"worldHeight" toml:"worldHeight"`

	// Population
	NumAgents   int     `json:"numAgents" toml:"numAgents"`
	OriginX     float64 `json:"originX" toml:"originX"` // spawn point of added agents
	OriginY     float64 `json:"originY" toml:"originY"`
	AgentRadius float64 `json:"agentRadius" toml:"agentRadius"`
	SpeedRange  Range   `json:"speedRange" toml:"speedRange"`
	ForceRange  Range   `json:"forceRange" toml:"forceRange"`
	Lifetime    float64 `json:"lifetime" toml:"lifetime"` // in ticks

	// "live" or "snapshot"
	NeighborPolicy string `json:"neighborPolicy" toml:"neighborPolicy"`

	// Headless runs
	Ticks          int     `json:"ticks" toml:"ticks"` // 0 runs until the population is gone
	LogLevel       string  `json:"logLevel" toml:"logLevel"`
	NoiseSeed      int64   `json:"noiseSeed" toml:"noiseSeed"`
	NoiseFrequency float64 `json:"noiseFrequency" toml:"noiseFrequency"`
	StatsInterval  int     `json:"statsInterval" toml:"statsInterval"`
}

func DefaultConfig() *Config {
	return &Config{
		WorldWidth:     1000,
		WorldHeight:    800,
		NumAgents:      150,
		OriginX:        500,
		OriginY:        400,
		AgentRadius:    4,
		SpeedRange:     Range{Min: 0, Max: 20},
		ForceRange:     Range{Min: 0, Max: 6},
		Lifetime:       5000,
		NeighborPolicy: LiveRead.String(),
		Ticks:          0,
		LogLevel:       "info",
		NoiseSeed:      42,
		NoiseFrequency: 0.005,
		StatsInterval:  60,
	}
}

// Origin returns the spawn origin as a vector.
func (c *Config) Origin() geometry.Vector3D {
	return geometry.Vector3D{X: c.OriginX, Y: c.OriginY}
}

// Policy parses NeighborPolicy, anything but "snapshot" is LiveRead.
func (c *Config) Policy() NeighborPolicy {
	if strings.EqualFold(c.NeighborPolicy, Snapshot.String()) {
		return Snapshot
	}
	return LiveRead
}

// Level maps LogLevel onto a goakt log level.
func (c *Config) Level() log.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarningLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// PopulationOptions turns the config into Population options.
func (c *Config) PopulationOptions(logger log.Logger) []Option {
	return []Option{
		WithLogger(logger),
		WithRadius(c.AgentRadius),
		WithSpeedRange(c.SpeedRange),
		WithForceRange(c.ForceRange),
		WithLifetime(c.Lifetime),
		WithNeighborPolicy(c.Policy()),
	}
}

// Validate checks the config against the embedded JSON schema.
func (c *Config) Validate() error {
	b, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return validateDocument(b)
}

func validateDocument(b []byte) error {
	sch, err := jsonschema.CompileString("config.schema.json", configSchema)
	if err != nil {
		return fmt.Errorf("failed to compile schema: %w", err)
	}

	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// LoadConfig loads a JSON (or, by extension, TOML) configuration file,
// validates it against the schema and lays it over DefaultConfig.
func LoadConfig(configFile string) (*Config, error) {
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(configFile), ".toml") {
		// TOML goes through JSON so both formats share the schema.
		var doc map[string]interface{}
		if _, err := toml.Decode(string(b), &doc); err != nil {
			return nil, fmt.Errorf("failed to decode config toml: %w", err)
		}
		if b, err = json.Marshal(doc); err != nil {
			return nil, fmt.Errorf("failed to convert config toml: %w", err)
		}
	}

	if err := validateDocument(b); err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}
