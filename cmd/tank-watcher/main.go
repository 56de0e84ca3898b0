package main

import "github.com/oshokin/sump-watch/cmd/tank-watcher/cmd"

func main() {
	cmd.Execute()
}
