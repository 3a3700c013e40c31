package main

import "github.com/timvw/pitch-check/cmd"

func main() {
	cmd.Execute()
}
