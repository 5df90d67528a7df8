package main

import "imgcrop/cmd"

func main() {
	cmd.Execute()
}
