package main

import "github.com/oshokin/sump-watch/cmd/pump-watcher/cmd"

func main() {
	cmd.Execute()
}
