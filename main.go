package main

import "josephlewis.net/lsd/cmd"

func main() {
	cmd.Execute()
}
