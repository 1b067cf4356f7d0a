package scan

import (
	"gopkg.in/yaml.v3"
)

// Manifest is the machine readable output of a scan: one entry per audio
// file, plus the viewer settings every entry was generated with. Docs
// pipelines consume this instead of raw iframe markup.
type Manifest struct {
	Viewer   string  `yaml:"viewer"`
	Overlays string  `yaml:"overlays"`
	Embeds   []Embed `yaml:"embeds"`
}

// Embed pairs a scanned audio file with its generated iframe src.
type Embed struct {
	Audio string `yaml:"audio"`
	Src   string `yaml:"src"`
}

// YAML renders the manifest.
func (m *Manifest) YAML() ([]byte, error) {
	return yaml.Marshal(m)
}
