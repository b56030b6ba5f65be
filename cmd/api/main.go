package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"shareit/internal/database"
	"shareit/internal/middleware"
	"shareit/internal/modules/booking"
	"shareit/internal/modules/item"
	"shareit/internal/modules/user"
	"shareit/internal/repository"
)

func setupRouter(db *gorm.DB) *gin.Engine {
	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	userHandler := user.NewHandler(user.NewService(userRepo))
	itemHandler := item.NewHandler(item.NewService(itemRepo, userRepo, bookingRepo, commentRepo))
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, userRepo, itemRepo))

	r := gin.New()
	r.Use(gin.Logger(), middleware.ErrorLogger())

	root := r.Group("/")
	{
		// user CRUD carries no caller identity
		userHandler.RegisterRoutes(root)

		// item and booking routes read the caller id from X-Sharer-User-Id
		identified := root.Group("/")
		identified.Use(middleware.Identity())
		{
			itemHandler.RegisterRoutes(identified)
			bookingHandler.RegisterRoutes(identified)
		}
	}
	return r
}

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "shareit.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal(err)
	}

	r := setupRouter(db)

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
