/*
Copyright 2026 Markus Papenbrock
*/
package main

import "github.com/mpapenbr/race-engineer-service-go/cmd"

func main() {
	cmd.Execute()
}
