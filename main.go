package main

import "github.com/hwu1001/v1zix.github.io/cmd"

func main() {
	cmd.Execute()
}
