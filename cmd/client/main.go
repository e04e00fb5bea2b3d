package main

import "medisync/cmd/client/cmd"

func main() {
	cmd.Execute()
}
