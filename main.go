package main

import "github.com/sergev/haf/cmd"

func main() {
	cmd.Execute()
}
