package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"quiz-extractor/internal/constants"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config describes one extraction run. Zero values in a YAML file fall
// back to the defaults from Default.
type Config struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Format string `yaml:"format"`

	MinQuestionID     int    `yaml:"min_question_id"`
	MaxQuestionID     int    `yaml:"max_question_id"`
	AssetFolderMarker string `yaml:"asset_folder_marker"`

	ExplanationLabelPrefixes []string `yaml:"explanation_label_prefixes"`
	CorrectColors            []string `yaml:"correct_colors"`
	MultipleAnswerCues       []string `yaml:"multiple_answer_cues"`

	ImageLookahead       int `yaml:"image_lookahead"`
	ExplanationLookahead int `yaml:"explanation_lookahead"`
}

func Default() Config {
	return Config{
		Format:                   constants.DefaultFormat,
		MinQuestionID:            constants.MinQuestionID,
		MaxQuestionID:            constants.MaxQuestionID,
		AssetFolderMarker:        constants.AssetFolderMarker,
		ExplanationLabelPrefixes: append([]string(nil), constants.ExplanationLabelPrefixes...),
		CorrectColors:            append([]string(nil), constants.CorrectColors...),
		MultipleAnswerCues:       append([]string(nil), constants.MultipleAnswerCues...),
		ImageLookahead:           constants.ImageLookahead,
		ExplanationLookahead:     constants.ExplanationLookahead,
	}
}

// Load reads a YAML config file and layers it over the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (Config, error) {
	var fileCfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&fileCfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("%w: parse yaml: %v", ErrInvalidConfig, err)
	}

	cfg := Default().Merge(fileCfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Merge returns c with every non-zero field of override applied.
func (c Config) Merge(override Config) Config {
	if override.Input != "" {
		c.Input = override.Input
	}
	if override.Output != "" {
		c.Output = override.Output
	}
	if override.Format != "" {
		c.Format = override.Format
	}
	if override.MinQuestionID != 0 {
		c.MinQuestionID = override.MinQuestionID
	}
	if override.MaxQuestionID != 0 {
		c.MaxQuestionID = override.MaxQuestionID
	}
	if override.AssetFolderMarker != "" {
		c.AssetFolderMarker = override.AssetFolderMarker
	}
	if len(override.ExplanationLabelPrefixes) > 0 {
		c.ExplanationLabelPrefixes = override.ExplanationLabelPrefixes
	}
	if len(override.CorrectColors) > 0 {
		c.CorrectColors = override.CorrectColors
	}
	if len(override.MultipleAnswerCues) > 0 {
		c.MultipleAnswerCues = override.MultipleAnswerCues
	}
	if override.ImageLookahead != 0 {
		c.ImageLookahead = override.ImageLookahead
	}
	if override.ExplanationLookahead != 0 {
		c.ExplanationLookahead = override.ExplanationLookahead
	}
	return c
}

func (c Config) Validate() error {
	if c.MinQuestionID < 1 {
		return fmt.Errorf("%w: min_question_id must be positive, got %d", ErrInvalidConfig, c.MinQuestionID)
	}
	if c.MaxQuestionID < c.MinQuestionID {
		return fmt.Errorf("%w: max_question_id %d is below min_question_id %d", ErrInvalidConfig, c.MaxQuestionID, c.MinQuestionID)
	}
	if c.ImageLookahead < 0 || c.ExplanationLookahead < 0 {
		return fmt.Errorf("%w: lookahead values must not be negative", ErrInvalidConfig)
	}
	if len(c.CorrectColors) == 0 {
		return fmt.Errorf("%w: correct_colors must not be empty", ErrInvalidConfig)
	}
	switch strings.ToLower(c.Format) {
	case "json", "md", "html", "pdf":
	default:
		return fmt.Errorf("%w: unsupported format %q", ErrInvalidConfig, c.Format)
	}
	return nil
}
