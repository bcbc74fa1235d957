package main

import "compass/cmd/compass-cli/cmd"

func main() {
	cmd.Execute()
}
