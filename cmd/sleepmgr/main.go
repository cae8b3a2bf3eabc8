package main

import "github.com/mcuos/sleepmgr/cmd/sleepmgr/cmd"

func main() {
	cmd.Execute()
}
