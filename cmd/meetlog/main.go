package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nguyentantai21042004/meetlog/pkg/apperror"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	root := newRootCmd(version)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(apperror.ExitCode(err))
	}
}
