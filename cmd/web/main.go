// Command web runs the sales analytics API server.
package main

import (
	"fmt"
	"os"

	"salespulse/internal/app"
)

func main() {
	application, err := app.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		application.Logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}
