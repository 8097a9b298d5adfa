package main

import (
	"github.com/c9s/mtcli/pkg/cmd"
)

func main() {
	cmd.Execute()
}
