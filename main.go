// Command docxoutline prints the numbered heading outline of DOCX documents.
package main

import (
	"os"

	"github.com/tenebris-tech/docxoutline/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
