// Package config defines the settings shared by the sump-watch binaries and
// provides helpers to load, validate and save them in YAML format.
//
// One file describes the monitored pin, the tank sensor, the sinks every
// event goes to, the alarms evaluated on top of them and the pump server.
package config
