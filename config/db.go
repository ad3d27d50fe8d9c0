package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"limo-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

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
		q.Set("loc", "Local")
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

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "limo_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	if err := Migrate(DB); err != nil {
		return err
	}

	SeedDatabase(DB)
	return nil
}

// Migrate applies the schema. Split out so tests can run it against an
// in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Admin{},
		&models.User{},
		&models.CompanySetting{},
		&models.Vehicle{},
		&models.Booking{},
		&models.BlogPost{},
	)
}

// SeedDatabase inserts the default admin, company settings, fleet vehicles
// and the static blog posts when the tables are empty.
func SeedDatabase(db *gorm.DB) {
	// ---------------- Admins ----------------
	var adminCount int64
	db.Model(&models.Admin{}).Count(&adminCount)
	if adminCount == 0 {
		admin := models.Admin{Email: envOrDefault("ADMIN_EMAIL", "admin@luxride.local"), Role: "admin"}
		if err := db.Create(&admin).Error; err != nil {
			log.Printf("warning: failed to create default admin record: %v", err)
		} else {
			log.Println("Default admin seeded")
		}

		// matching user account so the admin can sign in
		hash, err := bcrypt.GenerateFromPassword([]byte(envOrDefault("ADMIN_PASSWORD", "admin123")), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			user := models.User{
				Email:       admin.Email,
				Password:    string(hash),
				FirstName:   "Admin",
				LastName:    "User",
				DisplayName: "Admin User",
				Role:        "admin",
			}
			if err := db.Create(&user).Error; err != nil {
				log.Printf("warning: failed to create default admin user: %v", err)
			}
		}
	}

	// ---------------- Company settings ----------------
	var settingCount int64
	db.Model(&models.CompanySetting{}).Count(&settingCount)
	if settingCount == 0 {
		setting := models.CompanySetting{
			Name:    "LuxRide Chauffeur Services",
			Address: "1 Harbour Front, Suite 900",
			Phone:   "+1 (555) 010-7788",
			Email:   envOrDefault("ADMIN_EMAIL", "admin@luxride.local"),
			Website: "https://luxride.example.com",
		}
		if err := db.Create(&setting).Error; err != nil {
			log.Printf("warning: failed to seed company settings: %v", err)
		} else {
			log.Println("Company settings seeded")
		}
	}

	// ---------------- Vehicles ----------------
	var vehicleCount int64
	db.Model(&models.Vehicle{}).Count(&vehicleCount)
	if vehicleCount == 0 {
		vehicles := []models.Vehicle{
			{Name: "Mercedes-Benz S-Class", Type: "luxury-sedan", Capacity: 3, PricePerDay: 450, Description: "Flagship sedan with chauffeur", Features: datatypes.JSON([]byte(`["wifi","leather","privacy glass"]`))},
			{Name: "Cadillac Escalade", Type: "luxury-suv", Capacity: 6, PricePerDay: 520, Description: "Full-size luxury SUV", Features: datatypes.JSON([]byte(`["wifi","third row","luggage space"]`))},
			{Name: "Lincoln Stretch", Type: "stretch-limo", Capacity: 8, PricePerDay: 700, Description: "Classic stretch limousine", Features: datatypes.JSON([]byte(`["bar","mood lighting","partition"]`))},
			{Name: "Mercedes-Benz Sprinter", Type: "executive-van", Capacity: 12, PricePerDay: 600, Description: "Executive van for groups", Features: datatypes.JSON([]byte(`["wifi","reclining seats"]`))},
		}
		if err := db.Create(&vehicles).Error; err != nil {
			log.Printf("warning: failed to seed vehicles: %v", err)
		} else {
			log.Println("Fleet vehicles seeded")
		}
	}

	// ---------------- Static blog posts ----------------
	var postCount int64
	db.Model(&models.BlogPost{}).Where("is_static = ?", true).Count(&postCount)
	if postCount == 0 {
		now := time.Now()
		posts := []models.BlogPost{
			{
				Slug:        "airport-transfers-done-right",
				Title:       "Airport Transfers Done Right",
				Excerpt:     "What to expect from a professional chauffeur pickup.",
				Content:     "<p>A professional pickup starts before you land...</p>",
				PublishedAt: &now,
				Author:      "LuxRide Team",
				Tags:        datatypes.JSON([]byte(`["airport","service"]`)),
				Category:    "guides",
				ReadTime:    4,
				IsStatic:    true,
			},
			{
				Slug:        "choosing-the-right-vehicle",
				Title:       "Choosing the Right Vehicle for Your Event",
				Excerpt:     "Sedan, SUV, stretch or van — a quick guide.",
				Content:     "<p>Capacity is only the first question...</p>",
				PublishedAt: &now,
				Author:      "LuxRide Team",
				Tags:        datatypes.JSON([]byte(`["fleet","events"]`)),
				Category:    "guides",
				ReadTime:    6,
				IsStatic:    true,
			},
		}
		if err := db.Create(&posts).Error; err != nil {
			log.Printf("warning: failed to seed static blog posts: %v", err)
		} else {
			log.Println("Static blog posts seeded")
		}
	}
}
