package main

import "webpconv/cmd"

func main() {
	cmd.Execute()
}
