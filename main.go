// Package main is the entry point for the winnow CLI.
package main

import "gooze.dev/pkg/winnow/cmd"

func main() {
	cmd.Execute()
}
