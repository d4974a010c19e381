// Package dialog предоставляет системные диалоги (zenity).
package dialog

import (
	"path/filepath"

	"github.com/ncruces/zenity"

	"quickpick/internal/i18n"
	"quickpick/internal/snippets"
)

// ErrCancelled - пользователь закрыл диалог.
var ErrCancelled = zenity.ErrCanceled

// SelectSnippetsFile открывает диалог выбора файла сниппетов.
// Возвращает ErrCancelled, если пользователь закрыл диалог.
func SelectSnippetsFile(current string) (string, error) {
	opts := []zenity.Option{
		zenity.Title(i18n.T("dialog_snippets_title")),
		snippetsFilter(),
	}
	if current != "" {
		if abs, err := filepath.Abs(current); err == nil {
			opts = append(opts, zenity.Filename(abs))
		}
	}
	return zenity.SelectFile(opts...)
}

// snippetsFilter - фильтр по поддерживаемым расширениям.
func snippetsFilter() zenity.FileFilter {
	exts := snippets.Extensions()
	patterns := make([]string, len(exts))
	for i, ext := range exts {
		patterns[i] = "*" + ext
	}
	return zenity.FileFilter{
		Name:     i18n.T("dialog_snippets_filter"),
		Patterns: patterns,
	}
}

// ShowError показывает сообщение об ошибке.
func ShowError(title, message string) {
	zenity.Error(message, zenity.Title(title))
}
