package config

import (
	"github.com/spf13/pflag"
)

// Flag names registered by RegisterFlags.
const (
	FlagConfig           = "config"
	FlagServer           = "server"
	FlagAccept           = "accept"
	FlagMaxFileSizeKb    = "max-size-kb"
	FlagThumbnailWidth   = "thumb-width"
	FlagThumbnailHeight  = "thumb-height"
	FlagPassCodeRequired = "passcode-required"
	FlagUploadMode       = "upload-mode"
	FlagEnvelope         = "envelope"
	FlagDropDir          = "drop-dir"
	FlagLogLevel         = "log-level"
	FlagPreload          = "preload"
)

// RegisterFlags defines the configuration flags on fs. Defaults shown in
// help come from LoadDefaults; only flags the user sets are applied.
func RegisterFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(FlagConfig, "c", "", "path to a JSON or YAML config file")
	fs.StringP(FlagServer, "s", d.ServerURL, "base URL of the image server")
	fs.StringSlice(FlagAccept, d.AcceptedFiles, "accepted file extensions")
	fs.Float64(FlagMaxFileSizeKb, d.MaxFileSizeKb, "maximum upload size in kB")
	fs.Int(FlagThumbnailWidth, d.ThumbnailWidth, "thumbnail width in pixels")
	fs.Int(FlagThumbnailHeight, d.ThumbnailHeight, "thumbnail height in pixels")
	fs.Bool(FlagPassCodeRequired, d.IsPassCodeRequired, "require a valid pass code before uploads and deletes")
	fs.String(FlagUploadMode, d.UploadMode, "upload body format: json or raw")
	fs.String(FlagEnvelope, d.Envelope, "response envelope detection: any, syntax or mediatype")
	fs.StringP(FlagDropDir, "d", d.DropDir, "directory watched for dropped files")
	fs.String(FlagLogLevel, d.LogLevel, "log level: debug, info, warn or error")
	fs.String(FlagPreload, d.PreloadModel, "JSON file with image metadata to show at start")
}

// applyFlags overlays cfg with every flag the user changed.
func applyFlags(cfg *Config, fs *pflag.FlagSet) error {
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case FlagServer:
			cfg.ServerURL, err = fs.GetString(f.Name)
		case FlagAccept:
			cfg.AcceptedFiles, err = fs.GetStringSlice(f.Name)
		case FlagMaxFileSizeKb:
			cfg.MaxFileSizeKb, err = fs.GetFloat64(f.Name)
		case FlagThumbnailWidth:
			cfg.ThumbnailWidth, err = fs.GetInt(f.Name)
		case FlagThumbnailHeight:
			cfg.ThumbnailHeight, err = fs.GetInt(f.Name)
		case FlagPassCodeRequired:
			cfg.IsPassCodeRequired, err = fs.GetBool(f.Name)
		case FlagUploadMode:
			cfg.UploadMode, err = fs.GetString(f.Name)
		case FlagEnvelope:
			cfg.Envelope, err = fs.GetString(f.Name)
		case FlagDropDir:
			cfg.DropDir, err = fs.GetString(f.Name)
		case FlagLogLevel:
			cfg.LogLevel, err = fs.GetString(f.Name)
		case FlagPreload:
			cfg.PreloadModel, err = fs.GetString(f.Name)
		}
	})
	return err
}
