package main

import "gigmarket_backend/internal/app"

func main() {
	app.Run()
}
