package main

import "github.com/virtio-magma/magmagen/cmd"

// main is the entry point of the magmagen CLI application.
// It executes the root command which handles argument parsing and subcommand dispatch.
func main() {
	cmd.Execute()
}
