// faq answers questions about Sentinel Secure Services from a curated
// knowledge base. Offline, deterministic, single binary.
package main

import (
	"os"

	"github.com/corey/faq/cmd/faq/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
