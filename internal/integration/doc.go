// Package integration runs the sump-watch processes against each other over
// real sockets and files. It holds tests only.
package integration
