// Package ads renders the third-party ad network tags. The snippet never
// touches résumé data, and a broken configuration only disables ads.
package ads

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"regexp"
	"strings"
)

var ErrInvalidClient = errors.New("invalid ad publisher id")

const scriptURL = "https://pagead2.googlesyndication.com/pagead/js/adsbygoogle.js"

var clientPattern = regexp.MustCompile(`^(ca-)?pub-\d{6,20}$`)

type Config struct {
	Enabled bool
	Client  string
	Slot    string
}

var snippets = template.Must(template.New("script").Parse(
	`<script async src="{{.Src}}" crossorigin="anonymous"></script>`))

func init() {
	template.Must(snippets.New("slot").Parse(`{{if .Slot -}}
<ins class="adsbygoogle" style="display:block" data-ad-client="{{.Client}}" data-ad-slot="{{.Slot}}" data-ad-format="auto" data-full-width-responsive="true"></ins>
<script>try { (window.adsbygoogle = window.adsbygoogle || []).push({}); } catch (e) { console.error("Adsense error", e); }</script>
{{- end}}`))
}

// Markup is the ad network loader for the document head and the banner slot
// for the page body. Both are empty when ads are off.
type Markup struct {
	Script template.HTML
	Slot   template.HTML
}

// Snippet renders the ad markup for cfg.
func Snippet(cfg Config) (Markup, error) {
	if !cfg.Enabled {
		return Markup{}, nil
	}
	client := strings.TrimSpace(cfg.Client)
	if !clientPattern.MatchString(client) {
		return Markup{}, fmt.Errorf("%w: %q", ErrInvalidClient, cfg.Client)
	}
	if !strings.HasPrefix(client, "ca-") {
		client = "ca-" + client
	}

	data := struct {
		Src    string
		Client string
		Slot   string
	}{
		Src:    scriptURL + "?client=" + client,
		Client: client,
		Slot:   strings.TrimSpace(cfg.Slot),
	}
	var out Markup
	for name, dst := range map[string]*template.HTML{"script": &out.Script, "slot": &out.Slot} {
		var buf bytes.Buffer
		if err := snippets.ExecuteTemplate(&buf, name, data); err != nil {
			return Markup{}, fmt.Errorf("ads: render %s: %w", name, err)
		}
		*dst = template.HTML(buf.String())
	}
	return out, nil
}
