package main

import "bookingcal/internal/cli"

func main() {
	cli.Execute()
}
