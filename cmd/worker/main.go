package main

import "mensalizou/go_backend/internal/app"

func main() {
	app.RunWorker()
}
