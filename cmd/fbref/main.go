package main

import (
	"context"

	"fbref-transfers/cmd/fbref/commands"
	"fbref-transfers/lib/serviceutil"
)

func main() {
	ctx, cancel := serviceutil.SignalContext(context.Background())
	err := commands.Execute(ctx)
	cancel()
	if err != nil {
		serviceutil.Fatal("fbref failed", err)
	}
}
