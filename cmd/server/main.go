package main

import "cardcredit/internal/app/server"

func main() {
	server.Run()
}
