package wire

import "bytes"

// Request holds the three fields of a request line. Any of them may be
// empty when the corresponding delimiter is missing.
type Request struct {
	Method string
	Target string
	Proto  string
}

// ParseRequestLine splits buf into "<method> <target> <proto>\r". A field
// whose delimiter does not occur before the end of buf is empty, and so is
// every field after it. The input is never validated.
func ParseRequestLine(buf []byte) Request {
	method, rest := token(buf, ' ')
	target, rest := token(rest, ' ')
	proto, _ := token(rest, '\r')
	return Request{Method: method, Target: target, Proto: proto}
}

// token returns the bytes before stop and the remainder after it. When stop
// is absent the token is empty and nothing remains.
func token(buf []byte, stop byte) (string, []byte) {
	i := bytes.IndexByte(buf, stop)
	if i < 0 {
		return "", nil
	}
	return string(buf[:i]), buf[i+1:]
}
