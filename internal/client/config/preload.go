package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/imagedrop/internal/client/models"
)

// Preload reads the PreloadModel file. It returns nil when no file is
// configured, so nothing is rendered at start.
func (c *Config) Preload() ([]models.ImageMeta, error) {
	if c.PreloadModel == "" {
		return nil, nil
	}

	data, err := os.ReadFile(c.PreloadModel)
	if err != nil {
		return nil, fmt.Errorf("read preload model: %w", err)
	}

	list := []models.ImageMeta{}
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse preload model: %w", err)
	}
	return list, nil
}
