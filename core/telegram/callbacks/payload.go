// Package callbacks decodes inline keyboard callback data.
//
// Telebot encodes unique-button callbacks as "\f<unique>|<payload>"; these
// helpers split the pair and parse common payload shapes.
package callbacks

import (
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"
)

// ParseCallbackData returns the callback key and raw payload from the
// current update. Both are empty when the update carries no callback.
func ParseCallbackData(c tele.Context) (key, payload string) {
	cb := c.Callback()
	if cb == nil {
		return "", ""
	}
	return split(cb.Data)
}

func split(data string) (key, payload string) {
	data = strings.TrimPrefix(data, "\f")
	if i := strings.IndexByte(data, '|'); i >= 0 {
		return data[:i], data[i+1:]
	}
	return data, ""
}

// Key returns only the callback key.
func Key(c tele.Context) string {
	key, _ := ParseCallbackData(c)
	return key
}

// Payload returns only the callback payload.
func Payload(c tele.Context) string {
	_, payload := ParseCallbackData(c)
	return payload
}

// PayloadInt parses the payload as a decimal int.
func PayloadInt(c tele.Context) (int, bool) {
	v, err := strconv.Atoi(Payload(c))
	if err != nil {
		return 0, false
	}
	return v, true
}

// PayloadInt64 parses the payload as a decimal int64.
func PayloadInt64(c tele.Context) (int64, bool) {
	v, err := strconv.ParseInt(Payload(c), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// PayloadParts splits the payload on ":" for multi-field payloads.
func PayloadParts(c tele.Context) []string {
	p := Payload(c)
	if p == "" {
		return nil
	}
	return strings.Split(p, ":")
}
