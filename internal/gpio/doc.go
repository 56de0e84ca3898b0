// Package gpio reads pump pin levels from value files and turns changes of
// those files into debounced signals.
//
// On a Raspberry Pi the files live under /sys/class/gpio. The kernel updates
// those value files without raising inotify events, so they are followed by a
// Poller. A Watcher only sees files rewritten from user space, such as a
// relay board daemon or a test writing "0" or "1".
package gpio
