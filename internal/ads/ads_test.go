package ads

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnippet_Disabled(t *testing.T) {
	out, err := Snippet(Config{Client: "ca-pub-9108265555174727"})
	require.NoError(t, err)
	assert.Empty(t, out.Script)
	assert.Empty(t, out.Slot)
}

func TestSnippet_ScriptAndSlot(t *testing.T) {
	out, err := Snippet(Config{Enabled: true, Client: "pub-9108265555174727", Slot: "1234567"})
	require.NoError(t, err)

	script := string(out.Script)
	assert.Contains(t, script, `src="https://pagead2.googlesyndication.com/pagead/js/adsbygoogle.js?client=ca-pub-9108265555174727"`)
	assert.NotContains(t, script, "<ins")

	slot := string(out.Slot)
	assert.Contains(t, slot, `data-ad-client="ca-pub-9108265555174727"`)
	assert.Contains(t, slot, `data-ad-slot="1234567"`)
	assert.Contains(t, slot, `catch (e) { console.error("Adsense error", e); }`)
	assert.NotContains(t, slot, "adsbygoogle.js")
}

func TestSnippet_ScriptOnlyWithoutSlot(t *testing.T) {
	out, err := Snippet(Config{Enabled: true, Client: "ca-pub-123456"})
	require.NoError(t, err)
	assert.Contains(t, string(out.Script), "adsbygoogle.js")
	assert.Empty(t, out.Slot)
}

func TestSnippet_InvalidClient(t *testing.T) {
	for _, c := range []string{"", "pub-abc", `ca-pub-1"><script>`} {
		out, err := Snippet(Config{Enabled: true, Client: c})
		assert.ErrorIs(t, err, ErrInvalidClient, c)
		assert.Empty(t, out)
	}
}
