package httpserver

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/Ricky0403/SoftwareProject/internal/shared/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

type Server struct {
	app   *fiber.App
	store *session.Store
}

func NewServer() *Server {
	app := fiber.New()

	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Info("HTTP request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
			zap.String("remote_addr", c.IP()),
		)
		return err
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	store := session.New(session.Config{
		Expiration:     24 * time.Hour,
		CookieHTTPOnly: true,
	})

	return &Server{app: app, store: store}
}

// App exposes the fiber instance so modules can mount their routes.
func (s *Server) App() *fiber.App {
	return s.app
}

// SessionStore exposes the cookie session store used for login state.
func (s *Server) SessionStore() *session.Store {
	return s.store
}

const sessionUserKey = "user_id"

// SetSessionUser records the authenticated user in the request session.
func (s *Server) SetSessionUser(c *fiber.Ctx, userID string) error {
	sess, err := s.store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(sessionUserKey, userID)
	return sess.Save()
}

// ClearSession destroys the request session (logout).
func (s *Server) ClearSession(c *fiber.Ctx) error {
	sess, err := s.store.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}

// RequireAuth resolves the session to a user ID and passes it to the
// handler chain via locals. The core never reads ambient session state;
// handlers forward the identity explicitly into use cases.
func (s *Server) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := s.store.Get(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "not authenticated"})
		}
		userID, ok := sess.Get(sessionUserKey).(string)
		if !ok || userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "not authenticated"})
		}
		c.Locals("user_id", userID)
		return c.Next()
	}
}

func (s *Server) Start(addr string) error {
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt)
		<-quit

		log.Info("Shutting down HTTP server...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.app.ShutdownWithContext(ctx)
	}()

	log.Info("HTTP server started", zap.String("addr", addr))
	return s.app.Listen(addr)
}
