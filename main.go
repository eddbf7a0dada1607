package main

import "github.com/frahmantamala/bankseed/cmd"

func main() {
	cmd.Execute()
}
