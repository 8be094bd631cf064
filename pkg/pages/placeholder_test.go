package pages

import (
	"strings"
	"testing"
)

func TestReplace(t *testing.T) {
	replacer := func(name string) string {
		switch name {
		case "time":
			return "NOW"
		case "page":
			return "/x"
		}
		return ""
	}

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "no placeholders", text: "plain text", want: "plain text"},
		{name: "single", text: "at %time%.", want: "at NOW."},
		{name: "several", text: "%page% at %time%", want: "/x at NOW"},
		{name: "unknown name", text: "a%nope%b", want: "ab"},
		{name: "empty name", text: "50%% off", want: "50 off"},
		{name: "unterminated", text: "before %time", want: "before "},
		{name: "unterminated after replacement", text: "%time% and %oops", want: "NOW and "},
		{name: "empty input", text: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(Replace(tt.text, replacer))
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestTable(t *testing.T) {
	table := Table(6, 6)

	if got := strings.Count(table, "<tr>"); got != 6 {
		t.Errorf("expected 6 rows, got %d", got)
	}
	if got := strings.Count(table, "<td>"); got != 36 {
		t.Errorf("expected 36 cells, got %d", got)
	}
	for _, want := range []string{`"/photo1.jpg"`, `"/photo36.jpg"`} {
		if !strings.Contains(table, want) {
			t.Errorf("expected table to link %s", want)
		}
	}
	if strings.Contains(table, "/photo37.jpg") {
		t.Error("table has more cells than requested")
	}
}
