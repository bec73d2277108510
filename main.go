package main

import (
	"os"

	"github.com/weldyapp/weldy/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
