package snippet

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/ozenlabs/ozenembed/internal/utils"
)

// Defaults for generated embeds. Zero Options fields pick these up.
const (
	DefaultViewerURL = "./ozen-web/viewer.html"
	DefaultOverlays  = "pitch,formants"
	DefaultHeight    = "600"
	DefaultWidth     = "100%"
)

// ErrAudioNotFound is returned when the audio file does not exist on disk.
var ErrAudioNotFound = errors.New("audio file not found")

// Options control the generated iframe.
type Options struct {
	// ViewerURL locates the viewer page. It lands in the iframe src exactly
	// as given. For Build it must be local; the audio reference is computed
	// relative to its directory.
	ViewerURL string

	// Overlays is a comma separated list of overlay names passed through to
	// the viewer.
	Overlays string

	Height string
	Width  string
}

func (o Options) withDefaults() Options {
	if o.ViewerURL == "" {
		o.ViewerURL = DefaultViewerURL
	}
	if o.Overlays == "" {
		o.Overlays = DefaultOverlays
	} else {
		o.Overlays = NormalizeOverlays(o.Overlays)
	}
	if o.Height == "" {
		o.Height = DefaultHeight
	}
	if o.Width == "" {
		o.Width = DefaultWidth
	}
	return o
}

// Snippet is a generated embed.
type Snippet struct {
	// AudioRef is the audio reference before query escaping: a viewer
	// relative path for Build, a data URL or absolute URL for the others.
	AudioRef string `json:"audio"`

	// Src is the full iframe src attribute value.
	Src string `json:"src"`

	// HTML is the complete iframe element.
	HTML string `json:"html"`
}

// Build generates an embed for a local audio file. The audio reference inside
// the iframe src is the audio path relative to the viewer page's directory,
// so the snippet keeps working when the doc tree moves as a whole.
func Build(audioPath string, opts Options) (*Snippet, error) {
	opts = opts.withDefaults()

	if !utils.FileExists(audioPath) {
		return nil, fmt.Errorf("%w: %s", ErrAudioNotFound, audioPath)
	}
	if utils.IsHTTPURL(opts.ViewerURL) {
		return nil, fmt.Errorf("viewer url %q is remote; relative audio paths need a local viewer page", opts.ViewerURL)
	}

	viewerPage, err := utils.ResolvePath(opts.ViewerURL)
	if err != nil {
		return nil, fmt.Errorf("resolve viewer url: %w", err)
	}

	rel, err := utils.RelativePath(filepath.Dir(viewerPage), audioPath)
	if err != nil {
		return nil, fmt.Errorf("relative audio path: %w", err)
	}

	return build(rel, opts), nil
}

// BuildDataURI generates a self-contained embed: the audio bytes ride along
// inside the iframe src as a base64 data URL. It also reports the raw audio
// size so callers can warn when the page will get heavy.
func BuildDataURI(audioPath string, opts Options) (*Snippet, int64, error) {
	dataURL, size, err := DataURL(audioPath)
	if err != nil {
		return nil, 0, err
	}
	return build(dataURL, opts.withDefaults()), size, nil
}

// BuildRemote generates an embed whose audio loads from an absolute http(s)
// URL, typically one returned by publish.
func BuildRemote(audioURL string, opts Options) (*Snippet, error) {
	if !utils.IsHTTPURL(audioURL) {
		return nil, fmt.Errorf("audio url %q is not an absolute http(s) url", audioURL)
	}
	return build(audioURL, opts.withDefaults()), nil
}

const iframeFormat = `<iframe
  src="%s"
  width="%s"
  height="%s"
  frameborder="0"
  style="border: 1px solid #ddd; border-radius: 4px;">
</iframe>`

func build(ref string, opts Options) *Snippet {
	src := fmt.Sprintf("%s?audio=%s&overlays=%s", opts.ViewerURL, url.QueryEscape(ref), opts.Overlays)
	return &Snippet{
		AudioRef: ref,
		Src:      src,
		HTML:     fmt.Sprintf(iframeFormat, src, opts.Width, opts.Height),
	}
}

// NormalizeOverlays splits a comma separated overlay list, trims whitespace
// around each name and drops empties.
func NormalizeOverlays(s string) string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ",")
}
