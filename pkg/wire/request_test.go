package wire

import "testing"

func TestParseRequestLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Request
	}{
		{
			name: "full request",
			in:   "GET / HTTP/1.1\r\nHost: x\r\n\r\n",
			want: Request{Method: "GET", Target: "/", Proto: "HTTP/1.1"},
		},
		{
			name: "target with query",
			in:   "POST /photo3.jpg?size=1 HTTP/1.0\r\n\r\n",
			want: Request{Method: "POST", Target: "/photo3.jpg?size=1", Proto: "HTTP/1.0"},
		},
		{
			name: "missing carriage return",
			in:   "GET /nope HTTP/1.1\n",
			want: Request{Method: "GET", Target: "/nope", Proto: ""},
		},
		{
			name: "only method",
			in:   "GET",
			want: Request{},
		},
		{
			name: "method and target without version",
			in:   "GET /\r\n",
			want: Request{Method: "GET"},
		},
		{
			name: "empty buffer",
			in:   "",
			want: Request{},
		},
		{
			name: "no validation of garbage",
			in:   "\x00\x01 ?? junk\r",
			want: Request{Method: "\x00\x01", Target: "??", Proto: "junk"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseRequestLine([]byte(tt.in))
			if got != tt.want {
				t.Errorf("ParseRequestLine(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}
