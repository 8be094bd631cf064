package pages

import (
	"strconv"
	"strings"
)

// Replace substitutes every %name% in text with replacer(name). An opening
// '%' without a closing one ends the output at that point.
func Replace(text string, replacer func(name string) string) []byte {
	out := make([]byte, 0, len(text))
	for {
		open := strings.IndexByte(text, '%')
		if open < 0 {
			return append(out, text...)
		}
		out = append(out, text[:open]...)
		text = text[open+1:]

		end := strings.IndexByte(text, '%')
		if end < 0 {
			return out
		}
		out = append(out, replacer(text[:end])...)
		text = text[end+1:]
	}
}

// Table renders a cols x rows grid of numbered photo thumbnails.
func Table(cols, rows int) string {
	var b strings.Builder
	b.WriteString(`<table cellspacing = "5">`)
	n := 1
	for r := 0; r < rows; r++ {
		b.WriteString(`<tr>`)
		for c := 0; c < cols; c++ {
			num := strconv.Itoa(n)
			n++
			b.WriteString(`<td><a href = "/photo` + num + `.jpg"><img src = "/photo` + num +
				`.jpg" width="100" height="55" alt="photo` + num + `"></a></td>`)
		}
		b.WriteString(`</tr>`)
	}
	b.WriteString(`</table>`)
	return b.String()
}
