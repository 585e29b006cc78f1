package main

import "github.com/example/mcqdrill/cmd"

func main() {
	cmd.Execute()
}
