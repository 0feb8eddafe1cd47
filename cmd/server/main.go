package main

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
	"golang.org/x/oauth2/google"

	"github.com/dortega/velocilector/internal/avatar"
	"github.com/dortega/velocilector/internal/config"
	"github.com/dortega/velocilector/internal/database"
	"github.com/dortega/velocilector/internal/handlers"
	"github.com/dortega/velocilector/internal/importer"
	"github.com/dortega/velocilector/internal/repository"
	"github.com/dortega/velocilector/internal/security"
	"github.com/dortega/velocilector/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Load templates
	templates, err := loadTemplates(cfg.TemplatesPath)
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	log.Println("Templates loaded successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	playerRepo := repository.NewPlayerRepository(db)
	wordRepo := repository.NewWordRepository(db)
	textRepo := repository.NewTextRepository(db)
	gameRepo := repository.NewGameRepository(db)

	// Initialize services
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.EmailFrom, "Velocilector", cfg.OAuthRedirectBaseURL, cfg.EmailEnabled, cfg.EmailDebug)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	authService := service.NewAuthService(userRepo, emailService, cfg.SessionDuration)
	avatarGenerator := avatar.NewGenerator(cfg.AvatarAPIURL, cfg.AvatarAPIKey, cfg.AvatarCacheDir)
	playerService := service.NewPlayerService(playerRepo, gameRepo, avatarGenerator)
	contentService := service.NewContentService(wordRepo, textRepo)
	gameService := service.NewGameService(contentService, gameRepo, playerService)
	dashboardService := service.NewDashboardService(gameRepo, playerService)
	backupService := service.NewBackupService(db)
	contentImporter := importer.New(wordRepo, textRepo)

	oauthProviders := map[string]handlers.OAuthProvider{
		"google": {
			Name:  "google",
			Label: "Google",
			Config: &oauth2.Config{
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				Endpoint:     google.Endpoint,
				Scopes:       []string{"openid", "email", "profile"},
			},
			UserInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
		},
		"facebook": {
			Name:  "facebook",
			Label: "Facebook",
			Config: &oauth2.Config{
				ClientID:     cfg.FacebookClientID,
				ClientSecret: cfg.FacebookClientSecret,
				Endpoint:     facebook.Endpoint,
				Scopes:       []string{"email", "public_profile"},
			},
			UserInfoURL: "https://graph.facebook.com/me?fields=id,name,email",
		},
		"apple": {
			Name:  "apple",
			Label: "Apple",
			Config: &oauth2.Config{
				ClientID:     cfg.AppleClientID,
				ClientSecret: cfg.AppleClientSecret,
				Endpoint: oauth2.Endpoint{
					AuthURL:  "https://appleid.apple.com/auth/authorize",
					TokenURL: "https://appleid.apple.com/auth/token",
				},
				Scopes: []string{"name", "email"},
			},
			AuthParams: map[string]string{
				"response_mode": "query",
			},
		},
	}

	// Initialize handlers
	csrf := security.NewCSRFGenerator(cfg.CSRFSecret)
	rateLimiter := security.NewRateLimiter(20, time.Minute)
	middleware := handlers.NewMiddleware(authService, rateLimiter, csrf)
	authHandler := handlers.NewAuthHandler(authService, templates, oauthProviders, cfg.OAuthRedirectBaseURL)
	playerHandler := handlers.NewPlayerHandler(playerService, csrf, templates)
	playHandler := handlers.NewPlayHandler(gameService, playerService, csrf, templates)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, csrf, templates)
	adminHandler := handlers.NewAdminHandler(templates, wordRepo, textRepo, contentImporter, backupService, csrf)

	// Setup routes
	mux := http.NewServeMux()

	// Static files
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticFilesPath))))

	// Public routes
	mux.HandleFunc("GET /", authHandler.Home)
	mux.HandleFunc("GET /login", authHandler.ShowLogin)
	mux.HandleFunc("POST /login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("GET /register", authHandler.ShowRegister)
	mux.HandleFunc("POST /register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /logout", authHandler.Logout)
	mux.HandleFunc("GET /forgot-password", authHandler.ShowForgotPassword)
	mux.HandleFunc("POST /forgot-password", middleware.RateLimit(authHandler.ForgotPassword))
	mux.HandleFunc("GET /reset-password", authHandler.ShowResetPassword)
	mux.HandleFunc("POST /reset-password", middleware.RateLimit(authHandler.ResetPassword))
	mux.HandleFunc("GET /auth/{provider}/start", authHandler.StartOAuth)
	mux.HandleFunc("GET /auth/{provider}/callback", authHandler.OAuthCallback)

	// Player management
	mux.HandleFunc("GET /players", middleware.RequireAuth(playerHandler.ListPlayers))
	mux.HandleFunc("GET /players/new", middleware.RequireAuth(playerHandler.ShowNewPlayer))
	mux.HandleFunc("POST /players", middleware.RequireAuth(middleware.CSRFProtect(playerHandler.CreatePlayer)))
	mux.HandleFunc("GET /players/{id}/edit", middleware.RequireAuth(playerHandler.ShowEditPlayer))
	mux.HandleFunc("POST /players/{id}", middleware.RequireAuth(middleware.CSRFProtect(playerHandler.UpdatePlayer)))
	mux.HandleFunc("POST /players/{id}/level", middleware.RequireAuth(middleware.CSRFProtect(playerHandler.SetLevel)))
	mux.HandleFunc("POST /players/{id}/delete", middleware.RequireAuth(middleware.CSRFProtect(playerHandler.DeletePlayer)))
	mux.HandleFunc("GET /api/players/suggest-name", middleware.RequireAuth(playerHandler.SuggestName))

	// Dashboards
	mux.HandleFunc("GET /players/{id}/dashboard", middleware.RequireAuth(dashboardHandler.PlayerDashboard))
	mux.HandleFunc("GET /leaderboard", middleware.RequireAuth(dashboardHandler.Leaderboard))

	// Play page and game API
	mux.HandleFunc("GET /play", middleware.RequireAuth(playHandler.ShowPlay))
	mux.HandleFunc("POST /api/game/start", middleware.RequireAuth(middleware.CSRFProtect(playHandler.StartGame)))
	mux.HandleFunc("POST /api/game/tap", middleware.RequireAuth(middleware.CSRFProtect(playHandler.Tap)))
	mux.HandleFunc("POST /api/game/pause", middleware.RequireAuth(middleware.CSRFProtect(playHandler.Pause)))
	mux.HandleFunc("POST /api/game/resume", middleware.RequireAuth(middleware.CSRFProtect(playHandler.Resume)))
	mux.HandleFunc("POST /api/game/answer", middleware.RequireAuth(middleware.CSRFProtect(playHandler.SelectAnswer)))
	mux.HandleFunc("POST /api/game/next", middleware.RequireAuth(middleware.CSRFProtect(playHandler.NextQuestion)))
	mux.HandleFunc("POST /api/game/restart", middleware.RequireAuth(middleware.CSRFProtect(playHandler.Restart)))
	mux.HandleFunc("POST /api/game/end", middleware.RequireAuth(middleware.CSRFProtect(playHandler.EndGame)))
	mux.HandleFunc("GET /api/game/state", middleware.RequireAuth(playHandler.GameState))

	// Admin routes
	mux.HandleFunc("GET /admin", middleware.RequireAdmin(adminHandler.ShowAdminDashboard))
	mux.HandleFunc("POST /admin/words", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.CreateWord)))
	mux.HandleFunc("POST /admin/words/{id}/delete", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.DeleteWord)))
	mux.HandleFunc("POST /admin/texts", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.CreateText)))
	mux.HandleFunc("POST /admin/texts/{id}/questions", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.CreateQuestion)))
	mux.HandleFunc("POST /admin/texts/{id}/delete", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.DeleteText)))
	mux.HandleFunc("POST /admin/import", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.ImportContent)))
	mux.HandleFunc("GET /admin/backup/export", middleware.RequireAdmin(adminHandler.ExportDatabase))
	mux.HandleFunc("POST /admin/backup/import", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.ImportDatabase)))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Background session and reset-token cleanup
	scheduler := gocron.NewScheduler(time.UTC)
	if _, err := scheduler.Every(1).Hour().Do(func() {
		if err := authService.CleanupExpiredSessions(); err != nil {
			log.Printf("Error cleaning up expired sessions: %v", err)
		}
	}); err != nil {
		log.Printf("Failed to schedule session cleanup: %v", err)
	}
	if _, err := scheduler.Every(5).Minutes().Do(func() {
		if expired := gameService.ExpireIdleSessions(30 * time.Minute); expired > 0 {
			log.Printf("Expired %d idle game sessions", expired)
		}
	}); err != nil {
		log.Printf("Failed to schedule game session expiry: %v", err)
	}
	scheduler.StartAsync()
	defer scheduler.Stop()

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
}

// loadTemplates loads all template files
func loadTemplates(templatesPath string) (*template.Template, error) {
	baseTemplate := filepath.Join(templatesPath, "base.tmpl")

	patterns := []string{
		filepath.Join(templatesPath, "auth/*.tmpl"),
		filepath.Join(templatesPath, "players/*.tmpl"),
		filepath.Join(templatesPath, "play/*.tmpl"),
		filepath.Join(templatesPath, "admin/*.tmpl"),
		filepath.Join(templatesPath, "components/*.tmpl"),
	}

	var files []string
	files = append(files, baseTemplate)

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to glob pattern %s: %w", pattern, err)
		}
		files = append(files, matches...)
	}

	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"formatDate": func(t time.Time) string {
			return t.Format("02/01/2006")
		},
		"percent": func(value, total int) int {
			if total == 0 {
				return 0
			}
			return value * 100 / total
		},
	}

	return template.New("").Funcs(funcMap).ParseFiles(files...)
}
