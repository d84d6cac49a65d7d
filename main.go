package main

import (
	_ "embed"

	"github.com/collabpad/collab-notepad-service/cmd"
)

//go:embed config/config.yaml
var c string

func main() {
	cmd.Execute(c)
}
