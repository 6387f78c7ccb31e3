// Package format holds text formatting helpers for outbound messages.
package format

import "strings"

var markdownV1Replacer = strings.NewReplacer(
	"_", "\\_",
	"*", "\\*",
	"`", "\\`",
	"[", "\\[",
)

var markdownV2Replacer = strings.NewReplacer(
	"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]",
	"(", "\\(", ")", "\\)", "~", "\\~", "`", "\\`",
	">", "\\>", "#", "\\#", "+", "\\+", "-", "\\-",
	"=", "\\=", "|", "\\|", "{", "\\{", "}", "\\}",
	".", "\\.", "!", "\\!",
)

// EscapeMarkdown escapes user-supplied text for Telegram Markdown (V1).
func EscapeMarkdown(s string) string {
	return markdownV1Replacer.Replace(s)
}

// EscapeMarkdownV2 escapes user-supplied text for Telegram MarkdownV2.
func EscapeMarkdownV2(s string) string {
	return markdownV2Replacer.Replace(s)
}
