package notify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickpick/internal/i18n"
)

type sent struct {
	title, message string
}

func newRecording(enabled bool) (*Notifier, *[]sent) {
	var got []sent
	n := New(enabled)
	n.send = func(title, message string) error {
		got = append(got, sent{title, message})
		return nil
	}
	return n, &got
}

func TestDisabledNotifierSendsNothing(t *testing.T) {
	n, got := newRecording(false)
	n.Typed("hello")
	n.Error("boom")
	assert.Empty(t, *got)

	n.SetEnabled(true)
	assert.True(t, n.Enabled())
	n.Typed("hello")
	assert.Len(t, *got, 1)
}

func TestTitles(t *testing.T) {
	i18n.SetLanguage(i18n.EN)
	t.Cleanup(func() { i18n.SetLanguage(i18n.RU) })

	n, got := newRecording(true)
	n.Copied("Hey!")
	n.Info("ready")

	require.Len(t, *got, 2)
	assert.Equal(t, sent{"Quickpick: Copied to clipboard", "Hey!"}, (*got)[0])
	assert.Equal(t, sent{"Quickpick", "ready"}, (*got)[1])
}

func TestPreviewTruncatesByRunes(t *testing.T) {
	short := strings.Repeat("я", maxPreview)
	assert.Equal(t, short, preview(short))

	long := strings.Repeat("я", maxPreview+5)
	p := preview(long)
	assert.Equal(t, strings.Repeat("я", maxPreview)+"...", p)
}
