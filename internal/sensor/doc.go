// Package sensor reads the rainwater tank's ultrasonic distance sensor and
// turns a burst of noisy readings into one water depth.
package sensor
