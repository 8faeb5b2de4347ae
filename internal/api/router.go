package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hillstay/guesthouse-backend/internal/auth"
	"github.com/hillstay/guesthouse-backend/internal/booking"
	bookingHttp "github.com/hillstay/guesthouse-backend/internal/booking/http"
	"github.com/hillstay/guesthouse-backend/internal/file"
	fileHttp "github.com/hillstay/guesthouse-backend/internal/file/http"
	"github.com/hillstay/guesthouse-backend/internal/house"
	houseHttp "github.com/hillstay/guesthouse-backend/internal/house/http"
	"github.com/hillstay/guesthouse-backend/internal/user"
	userHttp "github.com/hillstay/guesthouse-backend/internal/user/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	UserService    user.Service
	HouseService   house.Service
	BookingService booking.Service
	FileService    file.Service
	JWTManager     *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (CORS, Logger, Auth) and registers routes for
// each module under /v1.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	adminMiddleware := RequireRole(user.RoleAdmin)
	ownerMiddleware := RequireRole(user.RoleOwner)
	renterMiddleware := RequireRole(user.RoleRenter)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	houseHandler := houseHttp.NewHandler(cfg.HouseService, cfg.UserService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, cfg.UserService)
	fileHandler := fileHttp.NewHandler(cfg.FileService)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		houseHttp.RegisterRoutes(v1, houseHandler, authMiddleware, adminMiddleware, ownerMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, ownerMiddleware, renterMiddleware)
		fileHttp.RegisterRoutes(v1, fileHandler, authMiddleware, ownerMiddleware)
	}

	return r
}
