package main

import "feedme/cmd"

func main() {
	cmd.Execute()
}
