// Package logger wraps zap for the sump-watch binaries:
//   - a global sugared logger with a console encoder,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing and switching,
//   - leveled helpers (Infof, WarnKV, ErrorKV, ...) that read the logger from a context.
//
// Services put a named logger into their context once and every helper below
// picks it up, so log lines carry the component name without extra plumbing.
package logger
