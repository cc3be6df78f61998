package main

import (
	"fmt"
	"os"

	"pet-adoption-platform/internal/cmd"

	"github.com/joho/godotenv"
)

// @title Pet Adoption Platform API
// @version 1.0
// @description Adopción de mascotas, tienda, citas veterinarias y checkout.
// @BasePath /
// @securityDefinitions.apikey SessionBearer
// @in header
// @name Authorization
func main() {
	// .env es opcional; en producción todo viene del entorno
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
