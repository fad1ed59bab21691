package main

import (
	"github.com/joho/godotenv"

	"paycalc/internal/app/server"
)

func main() {
	_ = godotenv.Load()
	server.Run()
}
