package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/macropower/assetref/internal/cli"
)

const (
	cmdName = "assetref"

	shortDesc = "Validate and resolve project asset references."
	longDesc  = `assetref validates URI references found inside project asset files, such
as url() and resource() values in style sheets, and resolves them to
existing project-relative paths.

References are resolved against the project scheme:

  /Assets/UI/main.uss            relative to the project root
  project:///Assets/UI/main.uss  explicit project path
  ../Shared/common.uss           relative to the referencing file

Every failure is classified as an invalid location, an invalid scheme, or an
invalid project path.
`
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cmd := cli.NewRootCmd(cmdName, shortDesc, longDesc)

	err := cmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimLeft(err.Error(), "\n"))
		os.Exit(1)
	}
}
