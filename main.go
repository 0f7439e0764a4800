package main

import "github.com/Rakhulsr/storefront-api/app/cmd"

func main() {
	cmd.RunCli()
}
