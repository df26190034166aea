package utils

import (
	"log"
	"os"
)

var (
	JWTSecretKey string
	JWTIssuer    string
)

// InitJWT loads the shared secret used to verify tokens issued by the
// hosted auth service. This backend never mints tokens itself.
func InitJWT() {
	if os.Getenv("GO_ENV") == "test" && os.Getenv("JWT_SECRET_KEY") == "" {
		os.Setenv("JWT_SECRET_KEY", "test_secret_key")
	}

	JWTSecretKey = os.Getenv("JWT_SECRET_KEY")
	if JWTSecretKey == "" {
		log.Fatal("JWT Secret Key not set")
	}

	JWTIssuer = GetEnvAsString("JWT_ISSUER", "studyflow")
}
