package main

import "github.com/oshokin/sump-watch/cmd/pump-server/cmd"

func main() {
	cmd.Execute()
}
