package main

import (
	"os"

	"github.com/cb-innovatekare/hokage/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
