package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/loddgo/loddgo-api/cmd/app"
)

// @title           loddgo API
// @description     Raffle ticket sales and draws.
//
// @license.name  MIT
//
// @securityDefinitions.apikey AdminKey
// @in header
// @name x-admin-key
// @description Shared organizer secret
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
