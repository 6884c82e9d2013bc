package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/homegame/api/internal/config"
	"github.com/homegame/api/internal/database"
	"github.com/homegame/api/internal/handler"
	"github.com/homegame/api/internal/jobs"
	"github.com/homegame/api/internal/mail"
	"github.com/homegame/api/internal/middleware"
	"github.com/homegame/api/internal/repository"
	"github.com/homegame/api/internal/service"
	"github.com/homegame/api/pkg/signer"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	gameRepo := repository.NewGameRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	postRepo := repository.NewPostRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	httpSessionRepo := repository.NewHTTPSessionRepository(db)

	// Initialize services
	cookieSigner := signer.New(cfg.Session.Secret)
	mailer := mail.NewSMTPMailer(cfg.Mail)

	httpSessionService := service.NewHTTPSessionService(service.HTTPSessionServiceConfig{
		Sessions: httpSessionRepo,
		Signer:   cookieSigner,
		Lifetime: cfg.Session.Lifetime,
	})
	userService := service.NewUserService(service.UserServiceConfig{
		Users:            userRepo,
		Tokens:           tokenRepo,
		Games:            gameRepo,
		Sessions:         sessionRepo,
		Posts:            postRepo,
		Notifications:    notificationRepo,
		HTTPSessions:     httpSessionRepo,
		Mailer:           mailer,
		BcryptCost:       cfg.Auth.BcryptCost,
		MaxLoginAttempts: cfg.Auth.MaxLoginAttempts,
		LockTime:         cfg.Auth.LockTime,
		ResetTokenTTL:    cfg.Auth.ResetTokenTTL,
		PublicBaseURL:    cfg.Server.PublicBaseURL,
		FrontendURL:      cfg.Server.FrontendURL,
	})
	gameService := service.NewGameService(service.GameServiceConfig{
		Games:         gameRepo,
		Users:         userRepo,
		Sessions:      sessionRepo,
		Posts:         postRepo,
		Notifications: notificationRepo,
	})
	sessionService := service.NewSessionService(service.SessionServiceConfig{
		Sessions:      sessionRepo,
		Games:         gameRepo,
		Notifications: notificationRepo,
	})
	cashoutService := service.NewCashoutService(service.CashoutServiceConfig{
		Games:         gameRepo,
		Sessions:      sessionRepo,
		Notifications: notificationRepo,
	})
	boardService := service.NewBoardService(service.BoardServiceConfig{
		Posts:         postRepo,
		Games:         gameRepo,
		Notifications: notificationRepo,
	})
	notificationService := service.NewNotificationService(service.NotificationServiceConfig{
		Notifications: notificationRepo,
	})

	// Background cleanup of expired reset tokens and login sessions
	cleanupJob := jobs.NewCleanupJob(tokenRepo, httpSessionService, time.Hour)
	cleanupJob.Start()
	defer cleanupJob.Stop()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(handler.AuthHandlerConfig{
		Users:        userService,
		HTTPSessions: httpSessionService,
		CookieName:   cfg.Session.CookieName,
		SecureCookie: cfg.IsProduction(),
	})
	accountHandler := handler.NewAccountHandler(handler.AccountHandlerConfig{
		Users:        userService,
		HTTPSessions: httpSessionService,
		CookieName:   cfg.Session.CookieName,
	})
	gameHandler := handler.NewGameHandler(gameService)
	sessionHandler := handler.NewSessionHandler(sessionService, cashoutService)
	boardHandler := handler.NewBoardHandler(boardService)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	// Rate limiter with background bucket cleanup
	limiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:   cfg.RateLimit.Max,
		Window: cfg.RateLimit.Window,
		Burst:  cfg.RateLimit.Burst,
	})
	defer limiter.Stop()

	authRequired := middleware.Session(cfg.Session.CookieName, cookieSigner, httpSessionService)

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", handler.Health)

	// Public routes (no session required)
	mux.HandleFunc("POST /api/signup", authHandler.Signup)
	mux.HandleFunc("POST /api/login", authHandler.Login)
	mux.HandleFunc("GET /api/login", authHandler.Me)
	mux.HandleFunc("POST /api/change_password", accountHandler.ChangePassword)
	mux.HandleFunc("POST /api/send_password_link", accountHandler.SendPasswordLink)
	mux.HandleFunc("GET /api/password_reset/{token}", accountHandler.PasswordReset)
	mux.HandleFunc("POST /api/submit_contact_form", accountHandler.SubmitContactForm)

	// Account routes
	mux.Handle("POST /api/logout", authRequired(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("POST /api/password_check", authRequired(http.HandlerFunc(accountHandler.PasswordCheck)))
	mux.Handle("POST /api/change_email", authRequired(http.HandlerFunc(accountHandler.ChangeEmail)))
	mux.Handle("POST /api/change_username", authRequired(http.HandlerFunc(accountHandler.ChangeUsername)))
	mux.Handle("GET /api/venmo_username", authRequired(http.HandlerFunc(accountHandler.VenmoUsername)))
	mux.Handle("POST /api/delete_account", authRequired(http.HandlerFunc(accountHandler.DeleteAccount)))

	// Notification routes
	mux.Handle("GET /api/notifications", authRequired(http.HandlerFunc(notificationHandler.List)))
	mux.Handle("POST /api/delete_notification", authRequired(http.HandlerFunc(notificationHandler.Delete)))
	mux.Handle("POST /api/clear_notifications", authRequired(http.HandlerFunc(notificationHandler.ClearAll)))

	// Game routes
	mux.Handle("GET /api/games", authRequired(http.HandlerFunc(gameHandler.List)))
	mux.Handle("GET /api/games/{gameId}", authRequired(http.HandlerFunc(gameHandler.Details)))
	mux.Handle("GET /api/posts/{gameId}", authRequired(http.HandlerFunc(gameHandler.Posts)))
	mux.Handle("POST /api/create_game", authRequired(http.HandlerFunc(gameHandler.Create)))
	mux.Handle("POST /api/edit_game", authRequired(http.HandlerFunc(gameHandler.Edit)))
	mux.Handle("POST /api/delete_game", authRequired(http.HandlerFunc(gameHandler.Delete)))
	mux.Handle("POST /api/add_member", authRequired(http.HandlerFunc(gameHandler.AddMember)))
	mux.Handle("POST /api/kick_member", authRequired(http.HandlerFunc(gameHandler.KickMember)))
	mux.Handle("POST /api/join_game", authRequired(http.HandlerFunc(gameHandler.Join)))
	mux.Handle("POST /api/leave_game", authRequired(http.HandlerFunc(gameHandler.Leave)))
	mux.Handle("POST /api/update_profit", authRequired(http.HandlerFunc(gameHandler.UpdateProfit)))

	// Message board routes
	mux.Handle("POST /api/new_message", authRequired(http.HandlerFunc(boardHandler.NewMessage)))
	mux.Handle("POST /api/delete_message", authRequired(http.HandlerFunc(boardHandler.DeleteMessage)))

	// Session and cashout routes
	mux.Handle("POST /api/create_session", authRequired(http.HandlerFunc(sessionHandler.Create)))
	mux.Handle("POST /api/edit_session", authRequired(http.HandlerFunc(sessionHandler.Edit)))
	mux.Handle("POST /api/delete_session", authRequired(http.HandlerFunc(sessionHandler.Delete)))
	mux.Handle("POST /api/send_rsvp_invite", authRequired(http.HandlerFunc(sessionHandler.SendRSVPInvite)))
	mux.Handle("POST /api/member_accept_rsvp", authRequired(http.HandlerFunc(sessionHandler.AcceptRSVP)))
	mux.Handle("POST /api/member_decline_rsvp", authRequired(http.HandlerFunc(sessionHandler.DeclineRSVP)))
	mux.Handle("POST /api/join_session", authRequired(http.HandlerFunc(sessionHandler.AcceptRSVP)))
	mux.Handle("POST /api/leave_session", authRequired(http.HandlerFunc(sessionHandler.Leave)))
	mux.Handle("POST /api/remove_session_member", authRequired(http.HandlerFunc(sessionHandler.RemoveMember)))
	mux.Handle("POST /api/submit_cashout", authRequired(http.HandlerFunc(sessionHandler.SubmitCashout)))

	// Outermost first: recovery wraps everything
	root := middleware.Chain(mux,
		middleware.Recovery,
		middleware.RequestID,
		middleware.Logger,
		middleware.SecurityHeaders,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.Compress,
		middleware.RateLimit(limiter),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      root,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Graceful shutdown on SIGINT/SIGTERM
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening",
			slog.String("port", cfg.Server.Port), slog.String("env", cfg.Server.Env))
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("server failed", slog.String("error", err.Error()))
		os.Exit(1)
	case sig := <-stop:
		slog.Info("shutting down", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("server stopped")
}
