// Package config loads the service tuning file. Limits may tighten the
// structural maxima per deployment but never loosen them.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"brickforge.ai/internal/model"
)

type Config struct {
	Addr    string `yaml:"addr"`
	DataDir string `yaml:"data_dir"`
	Limits  Limits `yaml:"limits"`
}

// Limits is also embedded in the WELCOME reply, so it carries json tags
// alongside the yaml ones.
type Limits struct {
	MaxWidth  int `yaml:"max_width" json:"max_width"`
	MaxDepth  int `yaml:"max_depth" json:"max_depth"`
	MaxHeight int `yaml:"max_height" json:"max_height"`
	MaxLayers int `yaml:"max_layers" json:"max_layers"`
}

func Defaults() Config {
	return Config{
		Addr:    ":8080",
		DataDir: "./data",
		Limits: Limits{
			MaxWidth:  model.MaxWidthStuds,
			MaxDepth:  model.MaxDepthStuds,
			MaxHeight: model.MaxHeightPlates,
			MaxLayers: model.MaxLayers,
		},
	}
}

func Load(path string) (Config, error) {
	c := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("config %s: %w", path, err)
	}
	c.clamp()
	return c, nil
}

// clamp caps configured limits at the structural maxima.
func (c *Config) clamp() {
	d := Defaults().Limits
	if c.Limits.MaxWidth < 1 || c.Limits.MaxWidth > d.MaxWidth {
		c.Limits.MaxWidth = d.MaxWidth
	}
	if c.Limits.MaxDepth < 1 || c.Limits.MaxDepth > d.MaxDepth {
		c.Limits.MaxDepth = d.MaxDepth
	}
	if c.Limits.MaxHeight < 1 || c.Limits.MaxHeight > d.MaxHeight {
		c.Limits.MaxHeight = d.MaxHeight
	}
	if c.Limits.MaxLayers < 1 || c.Limits.MaxLayers > d.MaxLayers {
		c.Limits.MaxLayers = d.MaxLayers
	}
}

// Check validates a parsed model against the deployment limits.
func (l Limits) Check(p *model.Parsed) *model.ValidationError {
	var bb model.BoundingBox
	layers := 0
	switch p.Kind {
	case model.KindSingle:
		bb = p.Single.BoundingBox
		layers = len(p.Single.Layers)
	case model.KindMulti:
		bb = p.Multi.BoundingBox
	case model.KindTri:
		bb = p.Tri.BoundingBox
	}

	verr := &model.ValidationError{Kind: p.Kind}
	if bb.Width > l.MaxWidth {
		verr.Fields = append(verr.Fields, model.FieldError{Field: "bounding_box.width", Reason: fmt.Sprintf("width %d exceeds limit %d", bb.Width, l.MaxWidth)})
	}
	if bb.Depth > l.MaxDepth {
		verr.Fields = append(verr.Fields, model.FieldError{Field: "bounding_box.depth", Reason: fmt.Sprintf("depth %d exceeds limit %d", bb.Depth, l.MaxDepth)})
	}
	if bb.Height > l.MaxHeight {
		verr.Fields = append(verr.Fields, model.FieldError{Field: "bounding_box.height", Reason: fmt.Sprintf("height %d exceeds limit %d", bb.Height, l.MaxHeight)})
	}
	if layers > l.MaxLayers {
		verr.Fields = append(verr.Fields, model.FieldError{Field: "layers", Reason: fmt.Sprintf("%d layers exceeds limit %d", layers, l.MaxLayers)})
	}
	if len(verr.Fields) == 0 {
		return nil
	}
	return verr
}
