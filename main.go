package main

import (
	"log"

	"github.com/spf13/cobra"
)

const (
	releaseVersion = "1.0.0"
)

func main() {
	log.SetFlags(0)
	opts := &Options{}
	cobra.CheckErr(newCmd(opts).Execute())
}
