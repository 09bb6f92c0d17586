package main

import (
	"github.com/dshills/ninjalex/cmd/ninjalex/cmd"
)

func main() {
	cmd.Execute()
}
