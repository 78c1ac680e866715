package middleware

import (
	"errors"
	"net/http"
	"strings"

	"parcel-delivery-api/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const ContextKeyEmail = "user_email"

// VerifyToken checks the bearer token and puts the verified principal email
// into the echo context for downstream handlers.
func VerifyToken(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}
			tokenString := strings.TrimPrefix(header, "Bearer ")

			token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}
			email, _ := claims["email"].(string)
			if email == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing email claim")
			}

			c.Set(ContextKeyEmail, email)
			return next(c)
		}
	}
}

// RequireRole gates a route on the principal's stored role. The user
// repository is an explicit dependency so the check carries no shared
// module-level state.
func RequireRole(userRepo repository.UserRepository, roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email := EmailFromContext(c)
			if email == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing principal")
			}

			user, err := userRepo.FindByEmail(c.Request().Context(), email)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return echo.NewHTTPError(http.StatusForbidden, "unknown user")
				}
				return err
			}

			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}

			return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
		}
	}
}

func EmailFromContext(c echo.Context) string {
	email, _ := c.Get(ContextKeyEmail).(string)
	return email
}
