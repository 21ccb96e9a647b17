package main

import (
	"fmt"
	"os"

	"github.com/superisaac/blockdrift/server"
)

func main() {
	if err := server.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
