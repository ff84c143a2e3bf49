package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/lt/internal/daterange"
	"github.com/alexanderramin/lt/internal/domain"
	"github.com/alexanderramin/lt/internal/timefmt"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// DefaultDuration is used by log when neither the argument nor
// LT_LOG_DURATION is given.
const DefaultDuration = 8 * time.Hour

// Config is the effective configuration after layering.
type Config struct {
	Instance           string `env:"JIRA_INSTANCE" validate:"omitempty,url"`
	User               string `env:"JIRA_USER"`
	Token              string `env:"JIRA_API_TOKEN"`
	LogIssue           string `env:"LT_LOG_ISSUE"`
	LogStart           string `env:"LT_LOG_START" validate:"omitempty,timeofday"`
	LogMessage         string `env:"LT_LOG_MESSAGE"`
	LogDuration        string `env:"LT_LOG_DURATION" validate:"omitempty,duration"`
	RangeAbbreviations string `env:"LT_RANGE_ABBREVIATIONS" validate:"omitempty,abbreviations"`
}

// ValidationError lists invalid options with a message each.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, len(keys))
	for i, k := range keys {
		msgs[i] = k + ": " + e.Fields[k]
	}
	return "invalid configuration: " + strings.Join(msgs, ", ")
}

// Load merges the system file, the local file and the environment, then
// validates the result.
func Load(paths Paths, env Env) (Config, error) {
	values := make(map[string]string)
	for _, file := range []string{paths.SystemFile, paths.LocalFile} {
		if file == "" {
			continue
		}
		fileValues, err := readFile(file)
		if err != nil {
			return Config{}, err
		}
		for k, v := range fileValues {
			values[k] = v
		}
	}

	var cfg Config
	rv := reflect.ValueOf(&cfg).Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		key := rt.Field(i).Tag.Get("env")
		if v, ok := env(key); ok {
			values[key] = v
		}
		rv.Field(i).SetString(values[key])
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("env")
	})
	_ = v.RegisterValidation("timeofday", func(fl validator.FieldLevel) bool {
		_, err := timefmt.ParseTime(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		_, err := timefmt.ParseDuration(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("abbreviations", func(fl validator.FieldLevel) bool {
		custom, err := ParseAbbreviations(fl.Field().String())
		if err != nil {
			return false
		}
		_, err = daterange.NewResolver(custom)
		return err == nil
	})
	return v
}

// Validate checks cfg's option values.
func Validate(cfg Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating configuration: %w", err)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "url":
			fields[fe.Field()] = fmt.Sprintf("%q is not a URL", fe.Value())
		case "timeofday":
			fields[fe.Field()] = fmt.Sprintf("%q is not a time of day", fe.Value())
		case "duration":
			fields[fe.Field()] = fmt.Sprintf("%q is not a duration", fe.Value())
		case "abbreviations":
			fields[fe.Field()] = fmt.Sprintf("%q is not a list of abbreviation=range pairs", fe.Value())
		default:
			fields[fe.Field()] = fmt.Sprintf("failed %s", fe.Tag())
		}
	}
	return &ValidationError{Fields: fields}
}

// ParseAbbreviations parses "q=last-month,tw=week".
func ParseAbbreviations(s string) (map[string]string, error) {
	out := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		abbr, name, ok := strings.Cut(pair, "=")
		abbr, name = strings.TrimSpace(abbr), strings.TrimSpace(name)
		if !ok || abbr == "" || name == "" {
			return nil, &domain.ParseError{Kind: "abbreviation", Input: pair, Reason: "expected abbreviation=range"}
		}
		out[abbr] = name
	}
	return out, nil
}

// StartTime returns the configured default start, or nil.
func (c Config) StartTime() (*domain.TimeOfDay, error) {
	if c.LogStart == "" {
		return nil, nil
	}
	tod, err := timefmt.ParseTime(c.LogStart)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", LogStart, err)
	}
	return &tod, nil
}

// Duration returns the configured default duration or DefaultDuration.
func (c Config) Duration() (time.Duration, error) {
	if c.LogDuration == "" {
		return DefaultDuration, nil
	}
	d, err := timefmt.ParseDuration(c.LogDuration)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", LogDuration, err)
	}
	return d, nil
}

// RangeResolver builds the date range resolver including custom abbreviations.
func (c Config) RangeResolver() (*daterange.Resolver, error) {
	custom, err := ParseAbbreviations(c.RangeAbbreviations)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", RangeAbbreviations, err)
	}
	r, err := daterange.NewResolver(custom)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", RangeAbbreviations, err)
	}
	return r, nil
}

func readFile(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return values, nil
}

// ValidateOption checks a single value before it is written to a file.
func ValidateOption(key Option, value string) error {
	var cfg Config
	rv := reflect.ValueOf(&cfg).Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		if rt.Field(i).Tag.Get("env") == string(key) {
			rv.Field(i).SetString(value)
		}
	}
	return Validate(cfg)
}
