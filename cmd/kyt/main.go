package main

import "github.com/Dr-Boom/KYT-Demo/internal/cli"

func main() {
	cli.Execute()
}
