package main

import "nuttxconf/cmd/nuttxconf-cli/cmd"

func main() {
	cmd.Execute()
}
