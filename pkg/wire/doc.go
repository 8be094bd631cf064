// Package wire implements the minimal request/response framing Callisto
// speaks over raw TCP.
//
// Requests are not validated: ParseRequestLine only splits the first line
// of whatever a single read returned into method, target and protocol.
// Responses are a status line, four fixed headers, a blank line and a body.
package wire
