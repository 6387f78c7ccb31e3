package callbacks

import "testing"

func TestSplitCallbackData(t *testing.T) {
	cases := []struct {
		data    string
		key     string
		payload string
	}{
		{"\femotion|Joy", "emotion", "Joy"},
		{"\fintensity|2", "intensity", "2"},
		{"\fmenu", "menu", ""},
		{"no_prefix|x", "no_prefix", "x"},
		{"\fmulti|Joy:Fear", "multi", "Joy:Fear"},
		{"", "", ""},
	}
	for _, tc := range cases {
		key, payload := split(tc.data)
		if key != tc.key || payload != tc.payload {
			t.Errorf("split(%q) = (%q, %q), want (%q, %q)", tc.data, key, payload, tc.key, tc.payload)
		}
	}
}
