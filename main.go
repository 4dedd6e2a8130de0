package main

import "github.com/18981850753/shopList-App/cmd"

func main() {
	cmd.Execute()
}
