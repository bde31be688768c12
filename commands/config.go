package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/gradebook/gradebook-app-sheets/grades"
)

const (
	DEFAULT_SOURCE_RANGE  = "engenharia_de_software!C4:F27"
	DEFAULT_TARGET_RANGE  = "engenharia_de_software!G4:H27"
	DEFAULT_LOG_RETENTION = 30
)

// Config is the optional YAML configuration file. Everything in it can also be set
// with GRADEBOOK_* environment variables (or a .env file) and the command line
// options take precedence over both.
type Config struct {
	WorkDir      string        `yaml:"workdir"`
	Credentials  string        `yaml:"credentials"`
	Tokens       string        `yaml:"tokens"`
	URL          string        `yaml:"url"`
	Source       string        `yaml:"source"`
	Target       string        `yaml:"target"`
	LogRange     string        `yaml:"log-range"`
	LogRetention uint          `yaml:"log-retention"`
	Policy       grades.Policy `yaml:"policy"`
	Labels       grades.Labels `yaml:"labels"`
}

func DefaultConfig() Config {
	return Config{
		Source:       DEFAULT_SOURCE_RANGE,
		Target:       DEFAULT_TARGET_RANGE,
		LogRetention: DEFAULT_LOG_RETENTION,
		Policy:       grades.DefaultPolicy(),
		Labels:       grades.DefaultLabels(),
	}
}

// LoadConfig loads the configuration from file. A missing file is only an error if
// the path was given explicitly.
func LoadConfig(path string) (*Config, error) {
	conf := DefaultConfig()

	file := path
	if file == "" {
		file = DEFAULT_CONFIG
	}

	if bytes, err := os.ReadFile(file); err != nil {
		if path != "" || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading configuration file %v (%w)", file, err)
		}
	} else if err := yaml.Unmarshal(bytes, &conf); err != nil {
		return nil, fmt.Errorf("error parsing configuration file %v (%w)", file, err)
	}

	envOverride(&conf.WorkDir, "GRADEBOOK_WORKDIR")

	if err := loadEnv(".env", filepath.Join(conf.WorkDir, ".env")); err != nil {
		return nil, err
	}

	envOverride(&conf.WorkDir, "GRADEBOOK_WORKDIR")
	envOverride(&conf.Credentials, "GRADEBOOK_CREDENTIALS")
	envOverride(&conf.Tokens, "GRADEBOOK_TOKENS")
	envOverride(&conf.URL, "GRADEBOOK_URL")
	envOverride(&conf.Source, "GRADEBOOK_SOURCE")
	envOverride(&conf.Target, "GRADEBOOK_TARGET")
	envOverride(&conf.LogRange, "GRADEBOOK_LOG_RANGE")

	if err := envOverrideUint(&conf.LogRetention, "GRADEBOOK_LOG_RETENTION"); err != nil {
		return nil, err
	}

	if err := conf.Policy.Validate(); err != nil {
		return nil, err
	}

	return &conf, nil
}

// loadEnv loads the variables from any of the .env files that exist. Variables that
// are already set in the environment are not replaced.
func loadEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}

		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("error loading %v (%w)", f, err)
		}
	}

	return nil
}

func envOverride(field *string, key string) {
	if v := os.Getenv(key); v != "" {
		*field = v
	}
}

func envOverrideUint(field *uint, key string) error {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid %s '%s' (%w)", key, v, err)
		}

		*field = uint(n)
	}

	return nil
}
