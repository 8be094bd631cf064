/*
Package cli provides helpers shared by the callisto commands.

Output Formatting:

Command results print as text or JSON:

	format, err := cli.ParseFormat(flagValue)
	if err != nil {
		return err
	}
	return cli.NewFormatter(format).FormatTo(os.Stdout, result)

Signal Handling:

OnShutdown runs a callback on the first SIGINT or SIGTERM:

	stop := cli.OnShutdown(ctx, func(sig os.Signal) {
		// begin shutdown
	})
	defer stop()
*/
package cli
