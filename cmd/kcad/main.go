package main

import "github.com/issus/kicadgo/cmd/kcad/cmd"

func main() {
	cmd.Execute()
}
