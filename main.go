package main

import "github.com/jatin-tres/SUI-Stake-data/cmd"

func main() {
	cmd.Execute()
}
