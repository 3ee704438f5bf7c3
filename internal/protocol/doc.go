// Package protocol decodes frames pushed by the fe2.io event server into
// typed game events.
//
// Parsing is total: malformed or unrecognized payloads decode to an Unknown
// event instead of returning an error, so protocol additions on the server
// side never break the client.
package protocol
