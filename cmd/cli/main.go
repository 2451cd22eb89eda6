// Command cli is the lend command-line client.
package main

import (
	"os"

	"lendhub/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
