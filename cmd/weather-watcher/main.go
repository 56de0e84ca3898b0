package main

import "github.com/oshokin/sump-watch/cmd/weather-watcher/cmd"

func main() {
	cmd.Execute()
}
