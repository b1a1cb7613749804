// Package main выпускает JWT для обращения к API при включённой аутентификации.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/magabrotheeeer/asset-maintenance/internal/config"
	"github.com/magabrotheeeer/asset-maintenance/internal/lib/jwt"
)

var (
	username = flag.String("user", "", "Username recorded as actor in audit fields")
	role     = flag.String("role", "user", "Role claim")
)

func main() {
	flag.Parse()
	if *username == "" {
		log.Fatal("-user is required")
	}

	cfg := config.MustLoad()
	if cfg.JWTSecretKey == "" {
		log.Fatal("jwttoken.jwt_secret_key is empty, authentication is disabled")
	}

	token, err := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL).GenerateToken(*username, *role)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(token)
}
