package main

import "github.com/iksnae/codehist/cmd"

func main() {
	cmd.Execute()
}
