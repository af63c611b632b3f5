package main

import "github.com/deploymenttheory/go-ftlplan/cmd"

func main() {
	cmd.Execute()
}
