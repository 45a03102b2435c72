package main

import (
	"os"

	"github.com/glebzikunov/MTRAN/cmd/mtran/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
