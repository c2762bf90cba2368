package main

import "index-manager/cmd"

func main() {
	cmd.Execute()
}
