// Command devtoken prints an access token signed with the local JWT settings
// so the API can be exercised without the identity service.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/auth"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "devtoken"})

	_ = godotenv.Load()

	subject := flag.String("sub", "", "customer or admin id (uuid); random when empty")
	role := flag.String("role", string(enums.ActorRoleCustomer), "token role: customer|admin")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "resource not working: config", err)
		os.Exit(1)
	}

	token, err := mint(cfg, *subject, *role, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "devtoken: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}

func mint(cfg *config.Config, subject, role string, now time.Time) (string, error) {
	if cfg.App.IsProd() {
		return "", errors.New("refusing to mint tokens in production")
	}

	actorRole, err := enums.ParseActorRole(strings.ToLower(strings.TrimSpace(role)))
	if err != nil {
		return "", err
	}

	subjectID := uuid.New()
	if trimmed := strings.TrimSpace(subject); trimmed != "" {
		subjectID, err = uuid.Parse(trimmed)
		if err != nil {
			return "", fmt.Errorf("invalid -sub: %w", err)
		}
	}

	return auth.MintAccessToken(cfg.JWT, now, auth.AccessTokenPayload{SubjectID: subjectID, Role: actorRole})
}
