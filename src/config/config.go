package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/xyproto/randomstring"
	"gopkg.in/yaml.v3"
)

const (
	NumFloors      = 10
	StartFloor     = 1
	TravelDuration = 1 * time.Second
	CarIDLength    = 6
	EnvPrefix      = "MONOVATOR_"
)

// DemoStep submits Floor after waiting Delay.
type DemoStep struct {
	Floor int           `yaml:"floor"`
	Delay time.Duration `yaml:"delay"`
}

type Config struct {
	CarID          string        `yaml:"car_id"`
	NumFloors      int           `yaml:"num_floors"`
	StartFloor     int           `yaml:"start_floor"`
	TravelDuration time.Duration `yaml:"travel_duration"`
	LogLevel       string        `yaml:"log_level"`
	LogFile        string        `yaml:"log_file"`
	Demo           bool          `yaml:"demo"`
	DemoSteps      []DemoStep    `yaml:"demo_steps"`
}

func Defaults() Config {
	return Config{
		NumFloors:      NumFloors,
		StartFloor:     StartFloor,
		TravelDuration: TravelDuration,
		LogLevel:       "info",
		Demo:           true,
		DemoSteps: []DemoStep{
			{Floor: 4},
			{Floor: 7, Delay: 2 * time.Second},
			{Floor: 1, Delay: 3 * time.Second},
		},
	}
}

// Load layers the defaults, the YAML file at path, the .env file at envFile and finally
// MONOVATOR_* process environment variables. Empty paths are skipped, and a missing .env file is not an error.
// A car ID is generated when none is configured.
func Load(path, envFile string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return cfg, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	env := map[string]string{}
	if envFile != "" {
		fileEnv, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("read env file %s: %w", envFile, err)
		}
		for k, v := range fileEnv {
			env[k] = v
		}
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(k, EnvPrefix) {
			env[k] = v
		}
	}
	if err := ApplyEnv(&cfg, env); err != nil {
		return cfg, err
	}

	if cfg.CarID == "" {
		cfg.CarID = randomstring.EnglishFrequencyString(CarIDLength)
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides cfg with the MONOVATOR_* keys present in env.
func ApplyEnv(cfg *Config, env map[string]string) error {
	for key, value := range env {
		name, ok := strings.CutPrefix(key, EnvPrefix)
		if !ok {
			continue
		}
		var err error
		switch name {
		case "CAR_ID":
			cfg.CarID = value
		case "NUM_FLOORS":
			cfg.NumFloors, err = strconv.Atoi(value)
		case "START_FLOOR":
			cfg.StartFloor, err = strconv.Atoi(value)
		case "TRAVEL_DURATION":
			cfg.TravelDuration, err = time.ParseDuration(value)
		case "LOG_LEVEL":
			cfg.LogLevel = value
		case "LOG_FILE":
			cfg.LogFile = value
		case "DEMO":
			cfg.Demo, err = strconv.ParseBool(value)
		}
		if err != nil {
			return fmt.Errorf("env %s=%q: %w", key, value, err)
		}
	}
	return nil
}

func (c Config) Validate() error {
	if c.NumFloors < 1 {
		return fmt.Errorf("num_floors must be at least 1, got %d", c.NumFloors)
	}
	if c.StartFloor < 1 || c.StartFloor > c.NumFloors {
		return fmt.Errorf("start_floor %d outside [1, %d]", c.StartFloor, c.NumFloors)
	}
	if c.TravelDuration < 0 {
		return fmt.Errorf("travel_duration must not be negative, got %v", c.TravelDuration)
	}
	for i, step := range c.DemoSteps {
		if step.Delay < 0 {
			return fmt.Errorf("demo step %d: negative delay %v", i, step.Delay)
		}
	}
	return nil
}
