package main

import "MetingHub/cmd"

func main() {
	cmd.Execute()
}
