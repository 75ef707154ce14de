package main

import (
	"github.com/mdman-dev/mdman/cmd"
	"github.com/mdman-dev/mdman/cmd/util"
)

func main() {
	defer util.HandlePanic()
	cmd.Execute()
}
