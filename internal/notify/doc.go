// Package notify provides the actions run when an alarm fires: a log line,
// an SNS notification and an external command such as a buzzer script.
//
// Alarm actions take no arguments and return nothing, so every action here
// captures its context up front and logs its own failures.
package notify
