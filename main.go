package main

import "airlift/cmd"

func main() {
	cmd.Execute()
}
