package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/Matteo842/SaveState-sub003/internal/collab"
	"github.com/Matteo842/SaveState-sub003/internal/singleinstance"
)

// runInteractive implements the no-argument entrypoint: become the single
// interactive instance, or wake the one already running and exit. The
// windowed shell this would hand off to is out of scope; this keeps the
// process alive on the wake endpoint until interrupted, which is enough to
// exercise and validate single-instance coordination end-to-end.
func runInteractive(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var ui collab.ConsoleCollaborator

	inst, outcome, err := singleinstance.Acquire(ctx, ui)
	if err != nil {
		return err
	}

	if outcome == singleinstance.OutcomeForwarded {
		fmt.Println("another instance is already running; it has been woken")
		return nil
	}

	defer inst.Shutdown()

	fmt.Println("savestate-backup running (ctrl-c to exit)")
	<-ctx.Done()
	return nil
}
