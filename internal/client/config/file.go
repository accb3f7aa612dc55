package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// parseFile overlays cfg with the keys present in a JSON or YAML file. The
// format is chosen by extension; anything other than .yaml/.yml is JSON.
//
//	{
//	  "server_url": "http://127.0.0.1:3000",
//	  "accepted_files": ["png", "jpg"],
//	  "max_file_size_kb": 500
//	}
func parseFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}
