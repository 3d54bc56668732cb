package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"hotel-booking-backend/models"
	"hotel-booking-backend/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "UTC")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := utils.EnvOrDefault("DB_USER", "root")
	pass := utils.EnvOrDefault("DB_PASS", "")
	host := utils.EnvOrDefault("DB_HOST", "127.0.0.1")
	port := utils.EnvOrDefault("DB_PORT", "3306")
	dbName := utils.EnvOrDefault("DB_NAME", "hotel_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		user, pass, host, port, dbName,
	), nil
}

// ConnectDatabase opens the mysql connection, migrates the schema in
// parent->child order and seeds reference data. Sets config.DB on success.
func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return err
	}

	DB = db

	if err := MigrateAndSeed(DB); err != nil {
		return err
	}
	return nil
}

// MigrateAndSeed is split out of ConnectDatabase so tests can run it against
// their own in-memory database.
func MigrateAndSeed(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Room{},
		&models.Booking{},
		&models.Role{},
		&models.User{},
	); err != nil {
		return err
	}
	return SeedDatabase(db)
}

// SeedDatabase inserts reference data on an empty database: default roles,
// a default admin user and a handful of demo rooms.
func SeedDatabase(db *gorm.DB) error {
	// ---------------- Roles ----------------
	for _, name := range []string{"ROLE_USER", "ROLE_ADMIN"} {
		var existing models.Role
		err := db.Where("name = ?", name).First(&existing).Error
		if err == nil {
			continue
		}
		if err := db.Create(&models.Role{Name: name}).Error; err != nil {
			log.Printf("warning: failed to seed role %s: %v", name, err)
		}
	}

	// ---------------- Admin user ----------------
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)
	if userCount == 0 {
		password := utils.EnvOrDefault("ADMIN_PASSWORD", "admin123")
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.User{
				FirstName: "Admin",
				LastName:  "User",
				Email:     "admin@hotel.local",
				Password:  string(hash),
			}
			if err := db.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to seed default admin: %v", err)
			} else {
				var adminRole models.Role
				if err := db.Where("name = ?", "ROLE_ADMIN").First(&adminRole).Error; err == nil {
					if err := db.Model(&admin).Association("Roles").Append(&adminRole); err != nil {
						log.Printf("warning: failed to assign admin role: %v", err)
					}
				}
			}
		}
	}

	// ---------------- Demo rooms ----------------
	var roomCount int64
	db.Model(&models.Room{}).Count(&roomCount)
	if roomCount == 0 {
		rooms := []models.Room{
			{RoomType: "Single", RoomPrice: 80, Amenities: datatypes.JSON([]byte(`["wifi","tv"]`))},
			{RoomType: "Double", RoomPrice: 120, Amenities: datatypes.JSON([]byte(`["wifi","tv","minibar"]`))},
			{RoomType: "Suite", RoomPrice: 250, Amenities: datatypes.JSON([]byte(`["wifi","tv","minibar","balcony"]`))},
		}
		if err := db.Create(&rooms).Error; err != nil {
			log.Printf("warning: failed to seed demo rooms: %v", err)
		} else {
			log.Println("Demo rooms seeded")
		}
	}

	return nil
}
