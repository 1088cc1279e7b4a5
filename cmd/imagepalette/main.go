// imagepalette - extract colour palettes from images
//
// imagepalette clusters image pixels into a small palette and prints it,
// saves it as a strip or JSON, or attaches it to the original image.
package main

import (
	"os"

	"github.com/jmylchreest/imagepalette/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
