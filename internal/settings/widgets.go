package settings

import (
	"image"
	"image/color"
	"path/filepath"
	"strings"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"quickpick/internal/config"
	"quickpick/internal/i18n"
)

// Color palette - modern dark theme
var (
	colorBG         = color.NRGBA{R: 30, G: 30, B: 34, A: 255}
	colorPanel      = color.NRGBA{R: 45, G: 45, B: 50, A: 255}
	colorPanelLight = color.NRGBA{R: 55, G: 55, B: 62, A: 255}
	colorText       = color.NRGBA{R: 240, G: 240, B: 245, A: 255}
	colorTextDim    = color.NRGBA{R: 140, G: 140, B: 150, A: 255}
	colorAccent     = color.NRGBA{R: 88, G: 166, B: 255, A: 255}
	colorWarning    = color.NRGBA{R: 255, G: 180, B: 0, A: 255}
)

var languageNames = map[i18n.Language]string{
	i18n.RU: "Русский",
	i18n.EN: "English",
}

func (w *Window) draw(gtx layout.Context) layout.Dimensions {
	// Fill background
	rect := clip.Rect{Max: gtx.Constraints.Max}
	paint.FillShape(gtx.Ops, colorBG, rect.Op())

	return layout.UniformInset(unit.Dp(20)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(w.drawTitle),

			layout.Rigid(layout.Spacer{Height: unit.Dp(16)}.Layout),

			// Scrollable content area
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return material.List(w.theme, &w.contentList).Layout(gtx, 1, func(gtx layout.Context, _ int) layout.Dimensions {
					return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
						layout.Rigid(w.drawHotkeySection),
						layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
						layout.Rigid(w.drawSnippetsSection),
						layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
						layout.Rigid(w.drawUILanguageSection),
						layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
						layout.Rigid(w.drawNotificationsSection),
					)
				})
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),

			// Buttons (fixed at bottom)
			layout.Rigid(w.drawButtons),
		)
	})
}

func (w *Window) drawTitle(gtx layout.Context) layout.Dimensions {
	label := material.Label(w.theme, unit.Sp(22), i18n.T("settings_title"))
	label.Color = colorText
	label.Font.Weight = font.Bold
	return label.Layout(gtx)
}

func (w *Window) drawSectionHeader(gtx layout.Context, text string) layout.Dimensions {
	label := material.Label(w.theme, unit.Sp(12), text)
	label.Color = colorTextDim
	label.Font.Weight = font.Medium
	return label.Layout(gtx)
}

func (w *Window) drawHotkeySection(gtx layout.Context) layout.Dimensions {
	isRecording := w.isRecordingHotkey()

	return w.drawPanel(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawSectionHeader(gtx, i18n.T("settings_hotkey"))
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),

			// Hotkey display and edit button
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
					layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
						return w.drawHotkeyPreview(gtx, isRecording)
					}),

					layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),

					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						if isRecording {
							return w.drawButton(gtx, &w.hotkeyEditBtn, i18n.T("settings_hotkey_cancel"), colorWarning, colorText)
						}
						return w.drawButton(gtx, &w.hotkeyEditBtn, i18n.T("settings_hotkey_edit"), colorAccent, colorText)
					}),
				)
			}),
		)
	})
}

func (w *Window) drawHotkeyPreview(gtx layout.Context, isRecording bool) layout.Dimensions {
	var hotkeyStr string
	var textColor, bgColor color.NRGBA

	if isRecording {
		mods, key := w.getRecordingState()
		hotkeyStr = strings.Join(buildHotkeyParts(mods, key), " + ")
		if hotkeyStr == "" {
			hotkeyStr = i18n.T("settings_hotkey_prompt")
		}
		textColor = colorWarning
		bgColor = color.NRGBA{R: 80, G: 60, B: 20, A: 255}
	} else {
		mods, key := w.getHotkeyState()
		hotkeyStr = strings.Join(buildHotkeyParts(mods, key), " + ")
		if hotkeyStr == "" {
			hotkeyStr = i18n.T("settings_hotkey_not_set")
		}
		textColor = colorAccent
		bgColor = colorPanelLight
	}

	return w.drawFilled(gtx, 8, bgColor, func(gtx layout.Context) layout.Dimensions {
		return layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			label := material.Label(w.theme, unit.Sp(16), "⌨  "+hotkeyStr)
			label.Color = textColor
			label.Font.Weight = font.Medium
			return label.Layout(gtx)
		})
	})
}

// buildHotkeyParts returns display names of the pressed modifiers and key.
func buildHotkeyParts(mods map[config.Modifier]bool, key config.Key) []string {
	parts := []string{}

	if mods[config.ModCtrl] {
		parts = append(parts, "Ctrl")
	}
	if mods[config.ModShift] {
		parts = append(parts, "Shift")
	}
	if mods[config.ModAlt] {
		parts = append(parts, "Alt")
	}
	if mods[config.ModSuper] {
		parts = append(parts, "Super")
	}

	if keyName := keyDisplayName(key); keyName != "" {
		parts = append(parts, keyName)
	}
	return parts
}

func keyDisplayName(key config.Key) string {
	switch key {
	case config.KeySpace:
		return "Space"
	case config.KeyReturn:
		return "Enter"
	case config.KeyTab:
		return "Tab"
	default:
		return strings.ToUpper(string(key))
	}
}

func (w *Window) drawSnippetsSection(gtx layout.Context) layout.Dimensions {
	path := w.getSnippetsPath()

	return w.drawPanel(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawSectionHeader(gtx, i18n.T("settings_snippets"))
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),

			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
					layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
						lbl := material.Label(w.theme, unit.Sp(14), filepath.Base(path))
						lbl.Color = colorText
						lbl.MaxLines = 1
						return lbl.Layout(gtx)
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return w.drawButton(gtx, &w.snippetsBtn, i18n.T("settings_snippets_pick"), colorPanelLight, colorText)
					}),
				)
			}),

			// Full path
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				lbl := material.Label(w.theme, unit.Sp(11), path)
				lbl.Color = colorTextDim
				lbl.MaxLines = 1
				return lbl.Layout(gtx)
			}),
		)
	})
}

func (w *Window) drawUILanguageSection(gtx layout.Context) layout.Dimensions {
	selectedLang := w.getSelectedUILang()

	return w.drawPanel(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawSectionHeader(gtx, i18n.T("settings_ui_language"))
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),

			// Language buttons
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				langs := i18n.AvailableLanguages()
				children := make([]layout.FlexChild, 0, 2*len(langs))
				for i, lang := range langs {
					if i > 0 {
						children = append(children, layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout))
					}
					children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return w.drawLangButton(gtx, lang, selectedLang == lang)
					}))
				}
				return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx, children...)
			}),
		)
	})
}

func (w *Window) drawLangButton(gtx layout.Context, lang i18n.Language, selected bool) layout.Dimensions {
	bgColor := colorPanelLight
	textColor := colorTextDim
	if selected {
		bgColor = colorAccent
		textColor = colorText
	}

	label := languageNames[lang]
	if label == "" {
		label = string(lang)
	}
	return w.drawButton(gtx, w.langButtons[lang], label, bgColor, textColor)
}

func (w *Window) drawNotificationsSection(gtx layout.Context) layout.Dimensions {
	return w.drawPanel(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				lbl := material.Label(w.theme, unit.Sp(14), i18n.T("settings_notifications"))
				lbl.Color = colorText
				return lbl.Layout(gtx)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				sw := material.Switch(w.theme, &w.notifications, i18n.T("settings_notifications"))
				sw.Color.Enabled = colorAccent
				sw.Color.Disabled = colorPanelLight
				return sw.Layout(gtx)
			}),
		)
	})
}

// drawPanel draws content on a rounded panel that spans the full width.
func (w *Window) drawPanel(gtx layout.Context, content layout.Widget) layout.Dimensions {
	gtx.Constraints.Min.X = gtx.Constraints.Max.X
	return w.drawFilled(gtx, 12, colorPanel, func(gtx layout.Context) layout.Dimensions {
		return layout.UniformInset(unit.Dp(16)).Layout(gtx, content)
	})
}

// drawFilled lays out content and paints a rounded background of its size
// beneath it.
func (w *Window) drawFilled(gtx layout.Context, radius unit.Dp, bg color.NRGBA, content layout.Widget) layout.Dimensions {
	macro := op.Record(gtx.Ops)
	dims := content(gtx)
	call := macro.Stop()

	rr := gtx.Dp(radius)
	rect := clip.RRect{
		Rect: image.Rectangle{Max: dims.Size},
		NE:   rr, NW: rr, SE: rr, SW: rr,
	}
	paint.FillShape(gtx.Ops, bg, rect.Op(gtx.Ops))

	call.Add(gtx.Ops)
	return dims
}

func (w *Window) drawButtons(gtx layout.Context) layout.Dimensions {
	return layout.Flex{
		Axis:      layout.Horizontal,
		Alignment: layout.Middle,
	}.Layout(gtx,
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.Dimensions{}
		}),

		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return w.drawButton(gtx, &w.cancelBtn, i18n.T("settings_cancel"), colorPanel, colorText)
		}),

		layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),

		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return w.drawButton(gtx, &w.applyBtn, i18n.T("settings_apply"), colorAccent, colorText)
		}),
	)
}

func (w *Window) drawButton(gtx layout.Context, btn *widget.Clickable, label string, bgColor, textColor color.NRGBA) layout.Dimensions {
	return w.drawFilled(gtx, 8, bgColor, func(gtx layout.Context) layout.Dimensions {
		return material.Clickable(gtx, btn, func(gtx layout.Context) layout.Dimensions {
			return layout.Inset{
				Top: unit.Dp(10), Bottom: unit.Dp(10),
				Left: unit.Dp(20), Right: unit.Dp(20),
			}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				lbl := material.Label(w.theme, unit.Sp(14), label)
				lbl.Color = textColor
				lbl.Font.Weight = font.Medium
				return lbl.Layout(gtx)
			})
		})
	})
}
