package main

import "goalcast/cmd"

func main() {
	cmd.Execute()
}
