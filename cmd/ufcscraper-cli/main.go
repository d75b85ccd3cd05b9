package main

import (
	"context"

	"github.com/nathanmaher41/UFCWebScraper/cmd/ufcscraper-cli/commands"
	"github.com/nathanmaher41/UFCWebScraper/lib/serviceutil"
	"github.com/nathanmaher41/UFCWebScraper/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()

	err := telemetry.SetupFromEnv(ctx, "ufcscraper-cli")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer telemetry.Shutdown(context.Background())
	telemetry.InstrumentPerfStats(ctx)

	commands.ExecuteContext(ctx)
}
