package main

import (
	"context"
	"os"

	"codeberg.org/mutker/nvfan/internal/gpu"
	"codeberg.org/mutker/nvfan/internal/logger"
)

func main() {
	a := &app{
		opener:  gpu.NewOpener(),
		geteuid: os.Geteuid,
	}

	if err := newRootCmd(a).ExecuteContext(context.Background()); err != nil {
		logger.ErrorWithCode(err).Msg("nvfan failed")
		os.Exit(1)
	}
}
