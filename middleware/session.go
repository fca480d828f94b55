package middleware

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"noteshare/model"
	"noteshare/repository"
	"noteshare/services"
	"noteshare/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultMaxActiveSessions = 5
	defaultSessionLifetime   = 24 * time.Hour
)

// maxActiveSessions caps concurrent device sessions per user.
func maxActiveSessions() int {
	return utils.GetEnvAsInt("MAX_ACTIVE_SESSIONS", defaultMaxActiveSessions)
}

func sessionLifetime() time.Duration {
	return utils.GetEnvAsDuration("SESSION_LIFETIME", defaultSessionLifetime)
}

// CreateSession records the device a login came from, enforcing the
// per-user active session cap. The record is cached in redis when a
// cache is configured.
func CreateSession(c *gin.Context, userID string, sessionRepo repository.SessionsRepository) (*model.Session, error) {
	ctx := c.Request.Context()

	activeCount, err := sessionRepo.CountActiveSessions(ctx, userID)
	if err != nil {
		return nil, err
	}
	if activeCount >= maxActiveSessions() {
		if err := sessionRepo.EndLeastActiveSession(ctx, userID); err != nil {
			return nil, err
		}
	}

	userAgent := c.Request.UserAgent()
	browser, osName, device := utils.ParseUserAgent(userAgent)

	session := &model.Session{
		SessionID:      uuid.New().String(),
		UserID:         userID,
		DisplayName:    utils.GenerateSessionName(userAgent),
		DeviceInfo:     fmt.Sprintf("%s on %s (%s)", browser, osName, device),
		IPAddress:      c.ClientIP(),
		CreatedAt:      time.Now(),
		ExpiresAt:      time.Now().Add(sessionLifetime()),
		LastActivityAt: time.Now(),
		IsActive:       true,
	}

	if err := sessionRepo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	if services.GlobalSessionCache != nil {
		// Cache failures are non-fatal; the repo stays authoritative.
		services.GlobalSessionCache.SetSession(session)
	}

	return session, nil
}

// SessionMiddleware runs after AuthMiddleware on protected routes. It
// refreshes the device session the token was minted for and rejects
// tokens whose session has been revoked or has expired, so ending a
// session cuts off its token before the JWT itself expires.
func SessionMiddleware(sessionRepo repository.SessionsRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetString("sessionID")
		if sessionID == "" {
			utils.Unauthorized(c, "Missing or invalid token")
			c.Abort()
			return
		}

		if err := TouchSession(c.Request.Context(), sessionID, sessionRepo); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				utils.Unauthorized(c, "Session expired or revoked")
				c.Abort()
				return
			}
			// Storage trouble refreshing the timestamp is not a
			// reason to fail the request; the token already passed
			// signature and expiry checks.
			log.Printf("[SESSION] touch failed for %s: %v", sessionID, err)
		}

		c.Next()
	}
}

// TouchSession refreshes a session's activity timestamp, checking the
// redis cache before the repository.
func TouchSession(ctx context.Context, sessionID string, sessionRepo repository.SessionsRepository) error {
	var session *model.Session

	if services.GlobalSessionCache != nil {
		cached, err := services.GlobalSessionCache.GetSession(sessionID)
		if err == nil && cached != nil {
			session = cached
		}
	}

	if session == nil {
		found, err := sessionRepo.GetSession(ctx, sessionID)
		if err != nil {
			return err
		}
		session = found
	}

	if !session.IsActive || time.Now().After(session.ExpiresAt) {
		return repository.ErrNotFound
	}

	session.LastActivityAt = time.Now()
	if err := sessionRepo.UpdateSession(ctx, session); err != nil {
		return err
	}
	if services.GlobalSessionCache != nil {
		services.GlobalSessionCache.SetSession(session)
	}
	return nil
}
