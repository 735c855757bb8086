package main

import "github.com/kamal-hamza/vsx-cli/cmd"

func main() {
	cmd.Execute()
}
