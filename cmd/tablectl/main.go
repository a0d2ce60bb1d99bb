// Command tablectl browses paginated JSON datasets in the terminal or the
// browser.
package main

import (
	"context"
	"os"

	"github.com/dmitrymomot/applib/internal/cli"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
