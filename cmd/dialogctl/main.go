package main

import "liyu1981.xyz/dialog-service/cmd/dialogctl/command"

func main() {
	command.Execute()
}
