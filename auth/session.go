package auth

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"moyo/db"
	"moyo/globals"
	"moyo/middleware"
	"moyo/models"
	"moyo/rdx"
	"moyo/upstream"
	"moyo/utils"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	sessionTTL = 12 * time.Hour
	// Redis hash of upstream access tokens, keyed by gateway user id
	tokenHash = "tokki"
)

// mintSessionToken signs the gateway's own JWT for a logged-in user. The
// upstream token never leaves the server.
func mintSessionToken(userID, username string, roles []string) (string, error) {
	claims := &middleware.Claims{
		Username: username,
		UserID:   userID,
		Role:     roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}

// storeUpstreamToken keeps the backend's access token server-side.
func storeUpstreamToken(userID, accessToken string) {
	if err := rdx.RdxHset(tokenHash, userID, accessToken); err != nil {
		log.Printf("auth: failed to cache upstream token for %s: %v", userID, err)
	}
}

func dropUpstreamToken(userID string) {
	if _, err := rdx.RdxHdel(tokenHash, userID); err != nil {
		log.Printf("auth: failed to drop upstream token for %s: %v", userID, err)
	}
}

// UpstreamToken resolves the backend token for the calling session, falling
// back to the read-only API user for anonymous catalog reads.
func UpstreamToken(r *http.Request, api *upstream.Client) string {
	userID := utils.GetUserIDFromRequest(r)
	if userID != "" {
		token, err := rdx.RdxHget(tokenHash, userID)
		if err == nil && token != "" {
			return token
		}
	}
	token, err := api.ReadOnlyToken(r.Context())
	if err != nil {
		return ""
	}
	return token
}

func saveSession(ctx context.Context, session models.Session) {
	opts := options.Replace().SetUpsert(true)
	_, err := db.SessionCollection.ReplaceOne(ctx, bson.M{"userid": session.UserID}, session, opts)
	if err != nil {
		log.Printf("auth: failed to persist session for %s: %v", session.UserID, err)
	}
}

func loadSession(ctx context.Context, userID string) (models.Session, error) {
	var session models.Session
	err := db.SessionCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&session)
	return session, err
}

func deleteSession(ctx context.Context, userID string) {
	if _, err := db.SessionCollection.DeleteOne(ctx, bson.M{"userid": userID}); err != nil {
		log.Printf("auth: failed to delete session for %s: %v", userID, err)
	}
}

func gatewayUserID(remoteID int) string {
	return fmt.Sprintf("u%d", remoteID)
}

// RemoteID extracts the backend user id from a gateway user id. Sessions
// without a backend identity (the warehouse manager) report 0.
func RemoteID(userID string) int {
	if len(userID) < 2 || userID[0] != 'u' {
		return 0
	}
	id, err := strconv.Atoi(userID[1:])
	if err != nil || id < 0 {
		return 0
	}
	return id
}
