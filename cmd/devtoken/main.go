// Command devtoken prints a bearer token signed like the identity provider's,
// for exercising the API locally without the provider.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"sashambhu/internal/auth"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	email := flag.String("email", "", "staff email to put in the token")
	ttl := flag.Duration("ttl", 12*time.Hour, "token lifetime")
	flag.Parse()

	if *email == "" {
		flag.Usage()
		os.Exit(2)
	}

	secret := os.Getenv("AUTH_TOKEN_SECRET")
	if secret == "" {
		log.Fatal("AUTH_TOKEN_SECRET is not set")
	}

	iss := os.Getenv("AUTH_TOKEN_ISS")
	if iss == "" {
		iss = "sashambhu-idp"
	}
	aud := os.Getenv("AUTH_TOKEN_AUD")
	if aud == "" {
		aud = "sashambhu"
	}

	token, err := auth.NewJWTAuthenticator(secret, aud, iss).GenerateToken(*email, *ttl)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(token)
}
