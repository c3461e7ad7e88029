package main

import (
	"github.com/spf13/cobra"

	"github.com/zostay/go-email-index/cmd/email-index/cmd"
)

func main() {
	err := cmd.Execute()
	cobra.CheckErr(err)
}
