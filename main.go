package main

import "github.com/khrees2412/proposly/cmd"

func main() {
	cmd.Execute()
}
