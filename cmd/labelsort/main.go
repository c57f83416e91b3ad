package main

import "labelsort/cmd/labelsort/cmd"

func main() {
	cmd.Execute()
}
