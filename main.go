package main

import "inventory-chat/cmd"

func main() {
	cmd.Execute()
}
