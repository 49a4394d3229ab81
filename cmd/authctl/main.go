// Command authctl lets an operator approve or deny app authorization
// requests held by a running launcher.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/launcher/internal/authctl"
)

func main() {
	if err := authctl.Run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "authctl:", err)
		os.Exit(1)
	}
}
