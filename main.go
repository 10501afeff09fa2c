package main

import "github.com/alde/inkframe/cmd"

func main() {
	cmd.Execute()
}
