// Package pump watches a sump pump's digital status input.
//
// Monitor reads the pin through an injected StatusSource whenever the signal
// driver reports an edge and fans the status out to every registered logger.
// The package also holds the on/off statistics used to summarize pump runs.
package pump
