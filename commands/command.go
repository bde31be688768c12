package commands

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"regexp"
	"strings"
)

const APP = "gradebook-app-sheets"
const VERSION = "v0.1.0"

type Options struct {
	Config string
	Debug  bool
}

type command struct {
	workdir     string
	credentials string
	tokens      string
	url         string
	debug       bool

	flags *flag.FlagSet
}

func (c *command) flagset(name string) *flag.FlagSet {
	flagset := flag.NewFlagSet(name, flag.ExitOnError)

	flagset.StringVar(&c.workdir, "workdir", c.workdir, "Directory for working files (tokens, lockfile, etc)")
	flagset.StringVar(&c.credentials, "credentials", c.credentials, "Path for the 'credentials.json' file")
	flagset.StringVar(&c.tokens, "tokens", c.tokens, "Directory for the authorisation tokens. Defaults to <workdir>/.google")
	flagset.StringVar(&c.url, "url", c.url, "Spreadsheet URL (or spreadsheet ID)")

	c.flags = flagset

	return flagset
}

// isSet returns true if the option was given explicitly on the command line.
func (c *command) isSet(name string) bool {
	set := false
	if c.flags != nil {
		c.flags.Visit(func(f *flag.Flag) {
			if f.Name == name {
				set = true
			}
		})
	}

	return set
}

// configure fills in the options that were not set on the command line from the
// configuration file/environment.
func (c *command) configure(conf *Config) {
	if !c.isSet("workdir") && conf.WorkDir != "" {
		c.workdir = conf.WorkDir
	}

	if !c.isSet("credentials") && conf.Credentials != "" {
		c.credentials = conf.Credentials
	}

	if !c.isSet("tokens") && conf.Tokens != "" {
		c.tokens = conf.Tokens
	}

	if !c.isSet("url") && conf.URL != "" {
		c.url = conf.URL
	}
}

// load reads the configuration file and environment and applies it to the common
// options. The returned Config is used by each command for its own options.
func (c *command) load(options *Options) (*Config, error) {
	c.debug = options.Debug

	conf, err := LoadConfig(options.Config)
	if err != nil {
		return nil, err
	}

	c.configure(conf)

	return conf, nil
}

func (c *command) validate() error {
	if strings.TrimSpace(c.credentials) == "" {
		return fmt.Errorf("--credentials is a required option")
	}

	if strings.TrimSpace(c.url) == "" {
		return fmt.Errorf("--url is a required option")
	}

	if _, err := spreadsheetID(c.url); err != nil {
		return err
	}

	return nil
}

func (c *command) tokenDir() string {
	if c.tokens != "" {
		return c.tokens
	}

	return filepath.Join(c.workdir, ".google")
}

func spreadsheetID(url string) (string, error) {
	url = strings.TrimSpace(url)

	if match := regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/(.*?)(?:/.*)?$`).FindStringSubmatch(url); len(match) > 1 && match[1] != "" {
		return match[1], nil
	}

	if regexp.MustCompile(`^[a-zA-Z0-9_-]{20,}$`).MatchString(url) {
		return url, nil
	}

	return "", fmt.Errorf("invalid spreadsheet URL - expected something like 'https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms'")
}

func helpOptions(flagset *flag.FlagSet) {
	count := 0
	flag.VisitAll(func(f *flag.Flag) {
		count++
	})

	flagset.VisitAll(func(f *flag.Flag) {
		fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
	})

	if count > 0 {
		fmt.Println()
		fmt.Println("  Options:")
		flag.VisitAll(func(f *flag.Flag) {
			fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
		})
	}
}

func normalise(v string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(v))
}

func debugf(format string, args ...any) {
	log.Printf("%-5s %s", "DEBUG", fmt.Sprintf(format, args...))
}

func infof(format string, args ...any) {
	log.Printf("%-5s %s", "INFO", fmt.Sprintf(format, args...))
}

func warnf(format string, args ...any) {
	log.Printf("%-5s %s", "WARN", fmt.Sprintf(format, args...))
}

func errorf(format string, args ...any) {
	log.Printf("%-5s %s", "ERROR", fmt.Sprintf(format, args...))
}
