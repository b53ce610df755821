package main

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	TCPAddr   string
	HTTPAddr  string
	JwtSecret string
}

func MustLoadConfig() *Config {
	godotenv.Load()
	tcpAddr := os.Getenv("TCP_ADDR")
	if tcpAddr == "" {
		tcpAddr = ":12345"
	}
	httpAddr := os.Getenv("HTTP_ADDR")
	if httpAddr == "" {
		httpAddr = ":3000"
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		panic("JWT_SECRET is not provided!")
	}
	return &Config{tcpAddr, httpAddr, jwtSecret}
}
