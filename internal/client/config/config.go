package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"github.com/spf13/pflag"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds runtime settings for the imagedrop client.
//
// Fields:
//   - ServerURL: base URL the api/* endpoints are resolved against.
//   - AcceptedFiles: file extensions the dropper accepts, without dots.
//   - MaxFileSizeKb: largest decoded upload size in kB.
//   - ThumbnailWidth, ThumbnailHeight: bounding box for upload thumbnails.
//   - IsPassCodeRequired: uploads and deletes stay locked until a pass code validates.
//   - UploadMode: "json" ({image, thumbnail} body) or "raw" (data URL body).
//   - Envelope: how response envelopes are recognised: "any", "syntax" or "mediatype".
//   - DropDir: directory watched by the watch command.
//   - LogLevel: debug, info, warn or error.
//   - PreloadModel: optional JSON file with image metadata shown at start.
type Config struct {
	ServerURL          string   `json:"server_url" yaml:"server_url" validate:"required,url"`
	AcceptedFiles      []string `json:"accepted_files" yaml:"accepted_files" validate:"min=1,dive,required"`
	MaxFileSizeKb      float64  `json:"max_file_size_kb" yaml:"max_file_size_kb" validate:"gt=0"`
	ThumbnailWidth     int      `json:"thumbnail_width" yaml:"thumbnail_width" validate:"gt=0"`
	ThumbnailHeight    int      `json:"thumbnail_height" yaml:"thumbnail_height" validate:"gt=0"`
	IsPassCodeRequired bool     `json:"is_pass_code_required" yaml:"is_pass_code_required"`
	UploadMode         string   `json:"upload_mode" yaml:"upload_mode" validate:"oneof=json raw"`
	Envelope           string   `json:"envelope" yaml:"envelope" validate:"oneof=any syntax mediatype"`
	DropDir            string   `json:"drop_dir" yaml:"drop_dir" validate:"required"`
	LogLevel           string   `json:"log_level" yaml:"log_level" validate:"oneof=debug info warn error"`
	PreloadModel       string   `json:"preload_model" yaml:"preload_model"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:3000"
	c.AcceptedFiles = []string{"png", "jpg", "jpeg", "gif"}
	c.MaxFileSizeKb = 1024
	c.ThumbnailWidth = 200
	c.ThumbnailHeight = 200
	c.IsPassCodeRequired = false
	c.UploadMode = "json"
	c.Envelope = "any"
	c.DropDir = "dropzone"
	c.LogLevel = "info"
	c.PreloadModel = ""
}

// Validate checks c against its field constraints.
func (c *Config) Validate() error {
	err := validator.New(validator.WithRequiredStructEnabled()).Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	msgs := lo.Map(verrs, func(fe validator.FieldError, _ int) string {
		if fe.Param() != "" {
			return fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("%s must satisfy %s", fe.Field(), fe.Tag())
	})
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

// Loader describes where configuration comes from.
type Loader struct {
	// EnvFiles are dotenv files loaded before reading the environment.
	// Missing files are skipped.
	EnvFiles []string
	// Flags, if set, override every other source for flags the user changed.
	// The config file path is taken from the "config" flag when present.
	Flags *pflag.FlagSet
}

// Load constructs a Config from defaults, dotenv files, the environment, an
// optional config file and command-line flags. Later sources take precedence
// over earlier ones. The result is validated.
func (l Loader) Load() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	envFiles := l.EnvFiles
	if envFiles == nil {
		envFiles = []string{".env"}
	}
	if err := loadDotEnv(envFiles); err != nil {
		return nil, err
	}

	file, err := parseEnv(cfg)
	if err != nil {
		return nil, err
	}

	if l.Flags != nil {
		if f := l.Flags.Lookup(FlagConfig); f != nil && f.Changed {
			file = f.Value.String()
		}
	}
	if file != "" {
		if err := parseFile(cfg, file); err != nil {
			return nil, err
		}
	}

	if l.Flags != nil {
		if err := applyFlags(cfg, l.Flags); err != nil {
			return nil, err
		}
	}

	cfg.AcceptedFiles = normalizeList(cfg.AcceptedFiles)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig loads configuration using fs for the flag layer.
func LoadConfig(fs *pflag.FlagSet) (*Config, error) {
	return Loader{Flags: fs}.Load()
}

func normalizeList(items []string) []string {
	trimmed := lo.Map(items, func(s string, _ int) string { return strings.TrimSpace(s) })
	return lo.Uniq(lo.Compact(trimmed))
}
