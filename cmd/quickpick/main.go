// Quickpick - всплывающее окно выбора сниппетов по горячей клавише.
//
// Работает в системном трее, по Ctrl+Space показывает дерево сниппетов
// и вводит выбранный текст в активное приложение.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"quickpick/internal/app"
	"quickpick/internal/browse"
	"quickpick/internal/config"
	"quickpick/internal/dialog"
	"quickpick/internal/hotkey"
	"quickpick/internal/i18n"
)

// Version устанавливается при сборке через -ldflags.
var Version = "dev"

type flags struct {
	snippets string
	hotkey   string
	tui      bool
	version  bool
}

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	var f flags
	flagSet := pflag.NewFlagSet("quickpick", pflag.ContinueOnError)
	flagSet.StringVarP(&f.snippets, "snippets", "s", "", "путь к файлу сниппетов (.json, .yaml)")
	flagSet.StringVar(&f.hotkey, "hotkey", "", "горячая клавиша на этот запуск, например ctrl+shift+space")
	flagSet.BoolVar(&f.tui, "tui", false, "выбрать сниппет в терминале и напечатать его в stdout")
	flagSet.BoolVar(&f.version, "version", false, "показать версию")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	if f.version {
		fmt.Println("quickpick", Version)
		return
	}

	if f.tui {
		if err := runTerminal(f); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	log.Printf("Quickpick %s запускается...", Version)

	// Запускаем в главном потоке (требование для macOS и некоторых GUI)
	hotkey.RunOnMainThread(func() { run(f) })
}

func run(f flags) {
	cfg := config.New()
	log.Printf("Конфигурация: %s", cfg.Path())
	if uiLang := cfg.UILanguage(); uiLang != "" {
		i18n.SetLanguage(i18n.Language(uiLang))
	}

	var opts app.Options
	if f.hotkey != "" {
		hk, err := config.ParseHotkey(f.hotkey)
		if err != nil {
			fatal(err)
		}
		opts.Hotkey = &hk
	}

	tree, err := app.LoadSnippets(cfg, f.snippets)
	if err != nil {
		fatal(fmt.Errorf("%s: %w", i18n.T("error_snippets_load"), err))
	}

	application, err := app.New(cfg, tree, opts)
	if err != nil {
		fatal(err)
	}

	log.Println("Приложение запущено.")
	application.Run()
}

// runTerminal показывает выбор в терминале. Интерфейс рисуется в stderr,
// выбранный сниппет печатается в stdout.
func runTerminal(f flags) error {
	if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stderr.Fd()) {
		return browse.ErrNotTerminal
	}

	cfg := config.New()
	if uiLang := cfg.UILanguage(); uiLang != "" {
		i18n.SetLanguage(i18n.Language(uiLang))
	}

	tree, err := app.LoadSnippets(cfg, f.snippets)
	if err != nil {
		return err
	}

	text, ok, err := browse.Run(tree, os.Stdin, os.Stderr)
	if err != nil {
		return err
	}
	if !ok {
		os.Exit(1)
	}
	fmt.Print(text)
	return nil
}

// fatal завершает процесс при ошибке запуска.
func fatal(err error) {
	log.Printf("Ошибка инициализации: %v", err)
	dialog.ShowError(i18n.T("dialog_error_title"), err.Error())
	os.Exit(1)
}
