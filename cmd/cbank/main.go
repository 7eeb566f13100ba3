package main

import "github.com/sbplanet/currencybank/cmd/cbank/cmd"

func main() {
	cmd.Execute()
}
