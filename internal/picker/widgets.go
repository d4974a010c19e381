package picker

import (
	"image"
	"image/color"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"quickpick/internal/i18n"
)

func (w *Window) layout(gtx layout.Context, s *session) layout.Dimensions {
	drawBackground(gtx, w.config.BGColor)

	return layout.UniformInset(unit.Dp(10)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			// Breadcrumb + back button
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawHeader(gtx, s)
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),

			// Search box
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawSearch(gtx, s)
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),

			// Entries of the current folder
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return w.drawList(gtx, s)
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(6)}.Layout),

			// Key hints
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				lbl := material.Label(w.theme, unit.Sp(10), i18n.T("picker_hint"))
				lbl.Color = w.config.TextDimColor
				lbl.MaxLines = 1
				return lbl.Layout(gtx)
			}),
		)
	})
}

// drawBackground fills the whole window.
func drawBackground(gtx layout.Context, col color.NRGBA) {
	rect := clip.Rect{Max: gtx.Constraints.Max}
	paint.FillShape(gtx.Ops, col, rect.Op())
}

// fillRounded paints a rounded rectangle of the given size.
func fillRounded(gtx layout.Context, size image.Point, radius unit.Dp, col color.NRGBA) {
	rr := gtx.Dp(radius)
	rect := clip.RRect{
		Rect: image.Rectangle{Max: size},
		NE:   rr, NW: rr, SE: rr, SW: rr,
	}
	paint.FillShape(gtx.Ops, col, rect.Op(gtx.Ops))
}

func (w *Window) drawHeader(gtx layout.Context, s *session) layout.Dimensions {
	crumb := s.nav.Breadcrumb()
	if crumb == "" {
		crumb = i18n.T("picker_root")
	}

	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			lbl := material.Label(w.theme, unit.Sp(13), crumb)
			lbl.Color = w.config.TextDimColor
			lbl.Font.Weight = font.Medium
			lbl.MaxLines = 1
			return lbl.Layout(gtx)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if !s.nav.CanGoBack() {
				return layout.Dimensions{}
			}
			return w.drawBackButton(gtx, &s.backBtn)
		}),
	)
}

// drawBackButton draws a small "←" button.
func (w *Window) drawBackButton(gtx layout.Context, btn *widget.Clickable) layout.Dimensions {
	return btn.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		bg := w.config.PanelColor
		if btn.Hovered() {
			bg = w.config.SelectedColor
		}

		macro := op.Record(gtx.Ops)
		dims := layout.Inset{
			Top: unit.Dp(2), Bottom: unit.Dp(2),
			Left: unit.Dp(10), Right: unit.Dp(10),
		}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			lbl := material.Label(w.theme, unit.Sp(14), "←")
			lbl.Color = w.config.AccentColor
			return lbl.Layout(gtx)
		})
		call := macro.Stop()

		fillRounded(gtx, dims.Size, 6, bg)
		call.Add(gtx.Ops)
		return dims
	})
}

func (w *Window) drawSearch(gtx layout.Context, s *session) layout.Dimensions {
	macro := op.Record(gtx.Ops)
	dims := layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		ed := material.Editor(w.theme, &s.editor, i18n.T("picker_search"))
		ed.TextSize = unit.Sp(14)
		ed.Color = w.config.TextColor
		ed.HintColor = w.config.TextDimColor
		return ed.Layout(gtx)
	})
	call := macro.Stop()

	fillRounded(gtx, image.Pt(gtx.Constraints.Max.X, dims.Size.Y), 8, w.config.PanelColor)
	call.Add(gtx.Ops)
	return layout.Dimensions{Size: image.Pt(gtx.Constraints.Max.X, dims.Size.Y)}
}

func (w *Window) drawList(gtx layout.Context, s *session) layout.Dimensions {
	visible := s.nav.Visible()
	if len(visible) == 0 {
		return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			lbl := material.Label(w.theme, unit.Sp(12), i18n.T("picker_empty"))
			lbl.Color = w.config.TextDimColor
			return lbl.Layout(gtx)
		})
	}

	for len(s.rows) < len(visible) {
		s.rows = append(s.rows, widget.Clickable{})
	}
	cursor := s.nav.Cursor()

	return material.List(w.theme, &s.list).Layout(gtx, len(visible), func(gtx layout.Context, i int) layout.Dimensions {
		return w.drawRow(gtx, &s.rows[i], visible[i], s.nav.IsFolder(visible[i]), i == cursor)
	})
}

// drawRow draws one entry; folders get a trailing marker.
func (w *Window) drawRow(gtx layout.Context, btn *widget.Clickable, label string, folder, selected bool) layout.Dimensions {
	return btn.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		var bg color.NRGBA
		switch {
		case selected:
			bg = w.config.SelectedColor
		case btn.Hovered():
			bg = w.config.PanelColor
		}

		macro := op.Record(gtx.Ops)
		dims := layout.Inset{
			Top: unit.Dp(6), Bottom: unit.Dp(6),
			Left: unit.Dp(8), Right: unit.Dp(8),
		}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					lbl := material.Label(w.theme, unit.Sp(14), label)
					lbl.Color = w.config.TextColor
					lbl.MaxLines = 1
					return lbl.Layout(gtx)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					if !folder {
						return layout.Dimensions{}
					}
					lbl := material.Label(w.theme, unit.Sp(14), "›")
					lbl.Color = w.config.AccentColor
					lbl.Alignment = text.End
					return lbl.Layout(gtx)
				}),
			)
		})
		call := macro.Stop()

		size := image.Pt(gtx.Constraints.Max.X, dims.Size.Y)
		if bg.A > 0 {
			fillRounded(gtx, size, 6, bg)
		}
		call.Add(gtx.Ops)
		return layout.Dimensions{Size: size}
	})
}
