package wire

import (
	"net/http"
	"strconv"
	"time"
)

// Status lines used by the page builder.
const (
	StatusOK       = "200 OK"
	StatusNotFound = "404 NotFound"
)

// Response is a fully generated reply.
type Response struct {
	Proto       string
	Status      string
	ContentType string
	Body        []byte
}

// Encode renders the response with the current time in the Date header.
func (r Response) Encode() []byte {
	return r.EncodeAt(time.Now())
}

// EncodeAt renders the response using now for the Date header. Headers
// carry no space after the colon.
func (r Response) EncodeAt(now time.Time) []byte {
	out := make([]byte, 0, len(r.Body)+160)
	out = append(out, r.Proto...)
	out = append(out, ' ')
	out = append(out, r.Status...)
	out = append(out, "\r\nCache-Control:no-cache\r\nContent-Length:"...)
	out = strconv.AppendInt(out, int64(len(r.Body)), 10)
	out = append(out, "\r\nContent-Type:"...)
	out = append(out, r.ContentType...)
	out = append(out, "\r\nDate:"...)
	out = append(out, FormatDate(now)...)
	out = append(out, "\r\n\r\n"...)
	out = append(out, r.Body...)
	return out
}

// FormatDate formats t as "Mon, 02 Jan 2006 15:04:05 GMT".
func FormatDate(t time.Time) string {
	return t.UTC().Format(http.TimeFormat)
}
