// Package protocol defines the wire format between the bakerd daemon and
// its clients.
//
// Messages are newline-delimited JSON envelopes carrying a command name and
// an optional payload. Each connection holds a single request-response
// exchange. Responses use CmdOK with a typed result payload, or CmdError
// with an [ErrorResult].
package protocol
