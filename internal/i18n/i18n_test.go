package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLanguagesHaveSameKeys(t *testing.T) {
	for key := range translations[RU] {
		_, ok := translations[EN][key]
		assert.True(t, ok, "missing en translation for %q", key)
	}
	for key := range translations[EN] {
		_, ok := translations[RU][key]
		assert.True(t, ok, "missing ru translation for %q", key)
	}
}

func TestTranslate(t *testing.T) {
	defer SetLanguage(GetLanguage())

	assert.True(t, SetLanguage(EN))
	assert.Equal(t, "Root", T("picker_root"))
	assert.Equal(t, "Quickpick is ready. Press ctrl+space", Tf("notify_ready", "ctrl+space"))
	assert.Equal(t, "no_such_key", T("no_such_key"))

	assert.False(t, SetLanguage("de"))
	assert.Equal(t, EN, GetLanguage())

	assert.True(t, SetLanguage(RU))
	assert.Equal(t, "Корень", T("picker_root"))
}
