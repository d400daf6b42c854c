package report

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Field names accepted in ColumnConfig.FieldName.
const (
	FieldID               = "ID"
	FieldFirstEmployeeID  = "FirstEmployeeID"
	FieldSecondEmployeeID = "SecondEmployeeID"
	FieldProjectIDs       = "ProjectIDs"
	FieldDays             = "Days"
)

var ErrUnknownField = errors.New("unknown report field")

// Config describes the layout of the exported sheet.
type Config struct {
	Sheet       string         `yaml:"sheet" validate:"required,max=31"`
	Title       string         `yaml:"title"`
	HasFilter   bool           `yaml:"has_filter"`
	HeaderStyle *StyleTemplate `yaml:"header_style"`
	Columns     []ColumnConfig `yaml:"columns" validate:"required,min=1,dive"`
}

// ColumnConfig defines a column of the sheet.
type ColumnConfig struct {
	FieldName string  `yaml:"field_name" validate:"required"`
	Header    string  `yaml:"header" validate:"required"`
	Width     float64 `yaml:"width" validate:"gte=0,lte=255"`
}

// StyleTemplate defines basic styling.
type StyleTemplate struct {
	Bold      bool   `yaml:"bold"`
	FontColor string `yaml:"font_color"` // hex color
	FillColor string `yaml:"fill_color"` // hex color
}

// DefaultConfig mirrors the columns of the matches table.
func DefaultConfig() *Config {
	return &Config{
		Sheet:       "Matches",
		Title:       "Team Longest Period",
		HasFilter:   true,
		HeaderStyle: &StyleTemplate{Bold: true, FillColor: "DDEBF7"},
		Columns: []ColumnConfig{
			{FieldName: FieldFirstEmployeeID, Header: "Employee ID #1", Width: 20},
			{FieldName: FieldSecondEmployeeID, Header: "Employee ID #2", Width: 20},
			{FieldName: FieldProjectIDs, Header: "Project ID", Width: 15},
			{FieldName: FieldDays, Header: "Days worked", Width: 13},
		},
	}
}

// ParseConfig decodes and validates a YAML layout.
func ParseConfig(data []byte) (*Config, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("report config is empty")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig reads a YAML layout from path. An empty path yields DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report config: %w", err)
	}
	return ParseConfig(data)
}

// Validate checks required values and column field names.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid report config: %w", err)
	}
	for _, col := range c.Columns {
		if _, ok := fieldValues[col.FieldName]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownField, col.FieldName)
		}
	}
	return nil
}
