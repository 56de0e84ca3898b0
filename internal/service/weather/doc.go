// Package weather implements the weather-watcher process: on a cron schedule
// it reads the current AccuWeather conditions and logs them as one
// four-field event to the configured sinks and alarms.
package weather
