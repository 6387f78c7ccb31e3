// Package keyboard builds inline and reply keyboards.
package keyboard

import (
	tele "gopkg.in/telebot.v4"
)

// InlineBtn describes one inline button before layout.
type InlineBtn struct {
	Text    string
	Unique  string
	Payload string
}

// Inline lays out buttons into rows, one row per slice.
func Inline(rows ...[]InlineBtn) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	out := make([]tele.Row, 0, len(rows))
	for _, row := range rows {
		btns := make([]tele.Btn, 0, len(row))
		for _, b := range row {
			btns = append(btns, markup.Data(b.Text, b.Unique, b.Payload))
		}
		out = append(out, markup.Row(btns...))
	}
	markup.Inline(out...)
	return markup
}

// InlineNPerRow lays out a flat button list n buttons per row.
func InlineNPerRow(n int, btns []InlineBtn) *tele.ReplyMarkup {
	if n < 1 {
		n = 1
	}
	rows := make([][]InlineBtn, 0, (len(btns)+n-1)/n)
	for i := 0; i < len(btns); i += n {
		end := i + n
		if end > len(btns) {
			end = len(btns)
		}
		rows = append(rows, btns[i:end])
	}
	return Inline(rows...)
}

// WithRow appends an extra row to an existing inline markup.
func WithRow(markup *tele.ReplyMarkup, row ...InlineBtn) *tele.ReplyMarkup {
	btns := make([]tele.Btn, 0, len(row))
	for _, b := range row {
		btns = append(btns, markup.Data(b.Text, b.Unique, b.Payload))
	}
	markup.InlineKeyboard = append(markup.InlineKeyboard, rowToInline(btns))
	return markup
}

func rowToInline(btns []tele.Btn) []tele.InlineButton {
	row := make([]tele.InlineButton, 0, len(btns))
	for _, b := range btns {
		row = append(row, *b.Inline())
	}
	return row
}

// Reply builds a one-time reply keyboard from plain labels.
func Reply(rows ...[]string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{ResizeKeyboard: true, OneTimeKeyboard: true}
	out := make([]tele.Row, 0, len(rows))
	for _, row := range rows {
		btns := make([]tele.Btn, 0, len(row))
		for _, text := range row {
			btns = append(btns, markup.Text(text))
		}
		out = append(out, markup.Row(btns...))
	}
	markup.Reply(out...)
	return markup
}

// Remove hides any active reply keyboard.
func Remove() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{RemoveKeyboard: true}
}
