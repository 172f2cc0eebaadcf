package main

import (
	"flag"
	"os"

	"k8s.io/klog/v2"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Suppress klog errors from client-go (RBAC and discovery noise)
	klog.InitFlags(nil)
	flag.Set("logtostderr", "false")
	flag.Set("stderrthreshold", "FATAL") // Only show FATAL errors
	flag.Set("v", "0")                   // Minimum verbosity
	defer klog.Flush()

	if err := newRootCmd().Execute(); err != nil {
		// Cobra already printed the error
		os.Exit(1)
	}
}
