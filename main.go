package main

import "github.com/giovaniif/device-rental/cmd/api"

func main() {
	api.StartServer()
}
