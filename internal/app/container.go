package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hillstay/guesthouse-backend/internal/api"
	"github.com/hillstay/guesthouse-backend/internal/auth"
	"github.com/hillstay/guesthouse-backend/internal/booking"
	"github.com/hillstay/guesthouse-backend/internal/file"
	"github.com/hillstay/guesthouse-backend/internal/house"
	"github.com/hillstay/guesthouse-backend/internal/pkg/storage"
	"github.com/hillstay/guesthouse-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction    bool
	ProdOrigins     string
	DBPool          *pgxpool.Pool
	JWTSecret       string
	JWTTTL          time.Duration
	BcryptCost      int
	UploadDir       string
	ListingCacheTTL time.Duration
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router      *gin.Engine
	JWTManager  *auth.JWTManager
	UserService user.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Init components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	localStorage, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("init upload storage failed: %w", err)
	}

	// User module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// House and booking modules share the same booking repository: the
	// house service consults it before deleting a listing, and the house
	// service in turn backs the booking availability query.
	houseRepo := house.NewPgxRepository(cfg.DBPool)
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)

	houseService := house.NewService(houseRepo, bookingRepo, cfg.ListingCacheTTL)
	bookingService := booking.NewService(bookingRepo, houseService)

	// File module
	fileRepo := file.NewPgxRepository(cfg.DBPool)
	fileService := file.NewService(fileRepo, localStorage)

	// API Router Config
	routerParams := api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		UserService:    userService,
		HouseService:   houseService,
		BookingService: bookingService,
		FileService:    fileService,
		JWTManager:     jwtManager,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:      router,
		JWTManager:  jwtManager,
		UserService: userService,
	}, nil
}
