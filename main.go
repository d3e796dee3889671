package main

import "asset-size-action/cmd"

func main() {
	cmd.Execute()
}
