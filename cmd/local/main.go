// Command local serves the Cloud Function on localhost for manual testing:
//
//	FUNCTION_TARGET=SendToSlack go run ./cmd/local
package main

import (
	"os"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"golang.org/x/exp/slog"

	_ "github.com/opentofu/cluster-notifier"
)

func main() {
	port := "8080"
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}

	slog.Info("Starting function server", "port", port, "target", os.Getenv("FUNCTION_TARGET"))
	if err := funcframework.Start(port); err != nil {
		slog.Error("Function server stopped", "error", err)
		os.Exit(1)
	}
}
