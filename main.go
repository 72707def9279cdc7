package main

import (
	"github.com/tekktrik/cronberry/internal/cmd"
)

func main() {
	cmd.Execute()
}
