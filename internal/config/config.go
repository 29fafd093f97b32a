package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jcalgo/jcal/internal/calendar"
	"github.com/jcalgo/jcal/internal/parser"
)

// EnvPrefix prefixes every environment override, e.g. JCAL_CALENDAR.
const EnvPrefix = "JCAL"

type Config struct {
	// Calendar settings
	Calendar    string `mapstructure:"calendar" validate:"required,oneof=jalali gregorian"`
	WeekStart   string `mapstructure:"week_start" validate:"omitempty,weekday"`
	WeekNumbers bool   `mapstructure:"week_numbers"`
	Months      int    `mapstructure:"months" validate:"min=1,max=120"`

	// Display settings
	Columns  string `mapstructure:"columns" validate:"required,columns"`
	Color    string `mapstructure:"color" validate:"required,oneof=auto always never"`
	Output   string `mapstructure:"output" validate:"required,oneof=text json yaml"`
	Vertical bool   `mapstructure:"vertical"`
	Julian   bool   `mapstructure:"julian"`

	// Logging
	LogLevel  string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"required,oneof=console json"`

	// UI settings
	Colors      map[string]string `mapstructure:"-"`
	KeyBindings map[string]string `mapstructure:"-"`

	// Path of the rc file that was read, empty when none was found.
	Path string `mapstructure:"-"`
}

func DefaultConfig() *Config {
	return &Config{
		Calendar:  "gregorian",
		Months:    1,
		Columns:   "3",
		Color:     "auto",
		Output:    "text",
		LogLevel:  "warn",
		LogFormat: "console",

		Colors: map[string]string{
			"normal":      "default",
			"header":      "bold",
			"weekday":     "bold",
			"today":       "reverse",
			"selected":    "black on yellow",
			"weekend":     "blue",
			"week_number": "cyan",
			"help":        "8",
			"status":      "8",
		},

		KeyBindings: map[string]string{
			"quit":                "q",
			"help":                "?",
			"today":               "t",
			"next_day":            "l",
			"prev_day":            "h",
			"next_week":           "j",
			"prev_week":           "k",
			"next_month":          ">",
			"prev_month":          "<",
			"next_year":           "]",
			"prev_year":           "[",
			"toggle_week_numbers": "w",
			"cycle_week_start":    "s",
			"toggle_calendar":     "c",
			"toggle_months":       "m",
			"goto":                "g",
		},
	}
}

// System returns the configured calendar.
func (c *Config) System() calendar.System {
	sys, err := calendar.ParseSystem(c.Calendar)
	if err != nil {
		return calendar.Gregorian
	}
	return sys
}

// WeekStartDay returns the configured week start, or the default of the
// configured calendar when none is set.
func (c *Config) WeekStartDay() time.Weekday {
	if c.WeekStart != "" {
		if wd, err := parser.ParseWeekday(c.WeekStart); err == nil {
			return wd
		}
	}
	return calendar.DefaultWeekStart(c.System())
}

// ColumnCount returns the number of months per line. auto is true when the
// count should follow the terminal width.
func (c *Config) ColumnCount() (n int, auto bool) {
	if strings.EqualFold(c.Columns, "auto") {
		return 0, true
	}
	n, _ = strconv.Atoi(c.Columns)
	return n, false
}

// Options control where Load reads from. Flags maps config keys to command
// line flags; a flag overrides the key only when it was set explicitly.
type Options struct {
	Path  string
	Flags map[string]*pflag.Flag

	// Calendar and WeekStart win over every other source when set. They
	// carry shorthand flags like -J or -m that have no key of their own.
	Calendar  string
	WeekStart string
}

// SearchPaths lists the rc file locations in the order they are tried.
func SearchPaths() []string {
	home, _ := os.UserHomeDir()
	paths := []string{os.Getenv("JCAL_CONFIG")}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "jcal", "jcalrc"))
	}
	if home != "" {
		paths = append(paths,
			filepath.Join(home, ".config", "jcal", "jcalrc"),
			filepath.Join(home, ".jcalrc"),
		)
	}
	return paths
}

// LoadConfig reads the first rc file found in SearchPaths and applies
// environment overrides.
func LoadConfig() (*Config, error) {
	return Load(Options{})
}

// Load builds the configuration from defaults, the rc file, JCAL_*
// environment variables and flags, in increasing order of precedence.
func Load(opts Options) (*Config, error) {
	config := DefaultConfig()
	v := viper.New()
	setDefaults(v, config)

	path := opts.Path
	if path == "" {
		path = findConfig(SearchPaths())
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}

	if path != "" {
		settings, err := config.loadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("error loading config from %s: %w", path, err)
		}
		if err := v.MergeConfigMap(settings); err != nil {
			return nil, fmt.Errorf("error merging config from %s: %w", path, err)
		}
		config.Path = path
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for key, flag := range opts.Flags {
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", flag.Name, err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if opts.Calendar != "" {
		config.Calendar = opts.Calendar
	}
	if opts.WeekStart != "" {
		config.WeekStart = opts.WeekStart
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("calendar", c.Calendar)
	v.SetDefault("week_start", c.WeekStart)
	v.SetDefault("week_numbers", c.WeekNumbers)
	v.SetDefault("months", c.Months)
	v.SetDefault("columns", c.Columns)
	v.SetDefault("color", c.Color)
	v.SetDefault("output", c.Output)
	v.SetDefault("vertical", c.Vertical)
	v.SetDefault("julian", c.Julian)
	v.SetDefault("log_level", c.LogLevel)
	v.SetDefault("log_format", c.LogFormat)
}

func findConfig(paths []string) string {
	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		_, err := parser.ParseWeekday(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("columns", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if strings.EqualFold(s, "auto") {
			return true
		}
		n, err := strconv.Atoi(s)
		return err == nil && n >= 1
	})
	return v
}

// Validate checks every field against its constraints and reports the
// failures one per field.
func (c *Config) Validate() error {
	c.Calendar = strings.ToLower(c.Calendar)
	if sys, err := calendar.ParseSystem(c.Calendar); err == nil {
		c.Calendar = sys.String()
	}
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: invalid value %q (%s)", fe.Field(), fmt.Sprint(fe.Value()), fe.Tag()))
	}
	return errors.New(strings.Join(msgs, "; "))
}

var (
	setRe   = regexp.MustCompile(`^set\s+(\w+)\s+(.+)$`)
	bindRe  = regexp.MustCompile(`^bind\s+(\S+)\s+(\S+)$`)
	colorRe = regexp.MustCompile(`^color\s+(\w+)\s+(.+)$`)
)

// loadFromFile parses an rc file. Colors and key bindings are applied to c
// directly; set variables are returned for layering.
func (c *Config) loadFromFile(path string) (map[string]any, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	settings := make(map[string]any)
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if err := c.parseLine(line, settings); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
	}

	return settings, scanner.Err()
}

func (c *Config) parseLine(line string, settings map[string]any) error {
	if matches := setRe.FindStringSubmatch(line); matches != nil {
		return setVariable(settings, matches[1], matches[2])
	}

	if matches := bindRe.FindStringSubmatch(line); matches != nil {
		if _, ok := c.KeyBindings[matches[2]]; !ok {
			return fmt.Errorf("unknown action: %s", matches[2])
		}
		c.KeyBindings[matches[2]] = matches[1]
		return nil
	}

	if matches := colorRe.FindStringSubmatch(line); matches != nil {
		if _, ok := c.Colors[matches[1]]; !ok {
			return fmt.Errorf("unknown color element: %s", matches[1])
		}
		c.Colors[matches[1]] = strings.Trim(strings.TrimSpace(matches[2]), `"'`)
		return nil
	}

	return fmt.Errorf("unknown config line: %s", line)
}

func setVariable(settings map[string]any, name, value string) error {
	// Remove quotes if present
	value = strings.Trim(strings.TrimSpace(value), `"'`)

	switch name {
	case "calendar":
		sys, err := calendar.ParseSystem(value)
		if err != nil {
			return err
		}
		settings["calendar"] = sys.String()

	case "week_start", "week_start_day":
		if _, err := parser.ParseWeekday(value); err != nil {
			return fmt.Errorf("invalid week_start: %s", value)
		}
		settings["week_start"] = value

	case "months":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid months: %s", value)
		}
		settings["months"] = n

	case "week_numbers", "vertical", "julian":
		settings[name] = parseBool(value)

	case "columns", "color", "output", "log_level", "log_format":
		settings[name] = strings.ToLower(value)

	default:
		return fmt.Errorf("unknown config variable: %s", name)
	}

	return nil
}

func parseBool(value string) bool {
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	}
	return false
}
