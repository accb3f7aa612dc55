package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

// EnvPrefix is the prefix of every environment variable read by the client.
const EnvPrefix = "IMAGEDROP_"

// envConfig mirrors Config for the environment layer. Pointer fields stay nil
// when the variable is unset so only present values are applied.
type envConfig struct {
	ServerURL          *string  `env:"IMAGEDROP_SERVER_URL"`
	AcceptedFiles      *string  `env:"IMAGEDROP_ACCEPTED_FILES"`
	MaxFileSizeKb      *float64 `env:"IMAGEDROP_MAX_FILE_SIZE_KB"`
	ThumbnailWidth     *int     `env:"IMAGEDROP_THUMBNAIL_WIDTH"`
	ThumbnailHeight    *int     `env:"IMAGEDROP_THUMBNAIL_HEIGHT"`
	IsPassCodeRequired *bool    `env:"IMAGEDROP_PASS_CODE_REQUIRED"`
	UploadMode         *string  `env:"IMAGEDROP_UPLOAD_MODE"`
	Envelope           *string  `env:"IMAGEDROP_ENVELOPE"`
	DropDir            *string  `env:"IMAGEDROP_DROP_DIR"`
	LogLevel           *string  `env:"IMAGEDROP_LOG_LEVEL"`
	PreloadModel       *string  `env:"IMAGEDROP_PRELOAD_MODEL"`
	ConfigFile         *string  `env:"IMAGEDROP_CONFIG"`
}

// loadDotEnv loads the given dotenv files. Variables that are already set
// keep their values.
func loadDotEnv(files []string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// parseEnv overlays cfg with IMAGEDROP_* variables and returns the config
// file named by IMAGEDROP_CONFIG, if any.
func parseEnv(cfg *Config) (string, error) {
	var ec envConfig
	if _, err := env.UnmarshalFromEnviron(&ec); err != nil {
		return "", fmt.Errorf("environment: %w", err)
	}

	setIf(&cfg.ServerURL, ec.ServerURL)
	if ec.AcceptedFiles != nil {
		cfg.AcceptedFiles = strings.Split(*ec.AcceptedFiles, ",")
	}
	setIf(&cfg.MaxFileSizeKb, ec.MaxFileSizeKb)
	setIf(&cfg.ThumbnailWidth, ec.ThumbnailWidth)
	setIf(&cfg.ThumbnailHeight, ec.ThumbnailHeight)
	setIf(&cfg.IsPassCodeRequired, ec.IsPassCodeRequired)
	setIf(&cfg.UploadMode, ec.UploadMode)
	setIf(&cfg.Envelope, ec.Envelope)
	setIf(&cfg.DropDir, ec.DropDir)
	setIf(&cfg.LogLevel, ec.LogLevel)
	setIf(&cfg.PreloadModel, ec.PreloadModel)

	if ec.ConfigFile != nil {
		return *ec.ConfigFile, nil
	}
	return "", nil
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
