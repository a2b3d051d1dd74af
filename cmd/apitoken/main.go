package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"datebot/internal/auth"
	"datebot/internal/config"
)

func main() {
	clientFlag := flag.String("client", "", "client id to embed in the token")
	ttlFlag := flag.Duration("ttl", auth.DefaultClientTokenTTL, "token lifetime")
	flag.Parse()
	if *clientFlag == "" {
		fmt.Fprintln(os.Stderr, "usage: apitoken -client <id> [-ttl 2160h]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatalf("config error: JWT_SECRET is required")
	}

	token, err := auth.SignClientToken(cfg.JWTSecret, *clientFlag, *ttlFlag)
	if err != nil {
		log.Fatalf("sign error: %v", err)
	}
	fmt.Println(token)
}
