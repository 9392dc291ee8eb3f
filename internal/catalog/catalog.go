// Package catalog holds the default hydration tips shipped with the server.
package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yashnextsavy/HydrationTracker/internal/models"
)

//go:embed default_tips.yaml
var defaultTipsYAML []byte

type tipsFile struct {
	Tips []struct {
		Tip      string `yaml:"tip"`
		Category string `yaml:"category"`
	} `yaml:"tips"`
}

// TipStore is the part of the store EnsureTips writes to.
type TipStore interface {
	ListHydrationTips(ctx context.Context, category string) ([]models.HydrationTip, error)
	CreateHydrationTip(ctx context.Context, tip *models.HydrationTip) error
}

// ParseTips decodes a tips document. Blank tips are rejected and categories
// are lower-cased.
func ParseTips(data []byte) ([]models.HydrationTip, error) {
	var file tipsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse tips: %w", err)
	}

	tips := make([]models.HydrationTip, 0, len(file.Tips))
	for i, entry := range file.Tips {
		text := strings.TrimSpace(entry.Tip)
		if text == "" {
			return nil, fmt.Errorf("parse tips: entry %d has no text", i)
		}
		category := strings.ToLower(strings.TrimSpace(entry.Category))
		if category == "" {
			category = "general"
		}
		tips = append(tips, models.HydrationTip{Tip: text, Category: category})
	}
	return tips, nil
}

func DefaultTips() ([]models.HydrationTip, error) {
	return ParseTips(defaultTipsYAML)
}

// EnsureTips inserts the default tips when the store has none and returns
// how many were inserted.
func EnsureTips(ctx context.Context, store TipStore) (int, error) {
	existing, err := store.ListHydrationTips(ctx, "")
	if err != nil {
		return 0, fmt.Errorf("list tips: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	tips, err := DefaultTips()
	if err != nil {
		return 0, err
	}
	for i := range tips {
		if err := store.CreateHydrationTip(ctx, &tips[i]); err != nil {
			return i, fmt.Errorf("insert tip: %w", err)
		}
	}
	return len(tips), nil
}
