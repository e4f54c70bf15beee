package main

import (
	"os"

	"github.com/conneroisu/mdinclude/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
