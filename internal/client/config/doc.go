// Package config loads runtime configuration for the imagedrop client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Dotenv files (".env" by default), which never override variables that
//     are already set.
//  3. IMAGEDROP_* environment variables.
//  4. Optional JSON or YAML file named by --config/-c or IMAGEDROP_CONFIG.
//  5. Command-line flags the user actually set (see RegisterFlags).
//
// The merged result is validated; failures wrap ErrInvalidConfig.
//
// # Environment
//
//	IMAGEDROP_SERVER_URL          base URL of the image server
//	IMAGEDROP_ACCEPTED_FILES      comma separated extensions, e.g. "png,jpg"
//	IMAGEDROP_MAX_FILE_SIZE_KB    maximum upload size in kB
//	IMAGEDROP_THUMBNAIL_WIDTH     thumbnail width in pixels
//	IMAGEDROP_THUMBNAIL_HEIGHT    thumbnail height in pixels
//	IMAGEDROP_PASS_CODE_REQUIRED  true to lock uploads until validated
//	IMAGEDROP_UPLOAD_MODE         json or raw
//	IMAGEDROP_ENVELOPE            any, syntax or mediatype
//	IMAGEDROP_DROP_DIR            watched drop directory
//	IMAGEDROP_LOG_LEVEL           debug, info, warn or error
//	IMAGEDROP_PRELOAD_MODEL       JSON file with image metadata
//	IMAGEDROP_CONFIG              config file path
package config
