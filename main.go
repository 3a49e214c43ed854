package main

import (
	"log"
	"os"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/xo/dburl"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"levelUpBot/models"
	"levelUpBot/scheduler"
	"levelUpBot/services"
	"levelUpBot/services/guildService"
	"levelUpBot/services/leveling"
)

func openDatabase(rawURL string) (*gorm.DB, error) {
	u, err := dburl.Parse(rawURL)
	if err != nil {
		return nil, err
	}

	var dialector gorm.Dialector
	switch u.Driver {
	case "mysql":
		dsn := u.DSN
		if !strings.Contains(dsn, "?") {
			dsn += "?charset=utf8mb4&parseTime=True&loc=Local"
		}
		dialector = mysql.Open(dsn)
	case "sqlserver":
		dialector = sqlserver.Open(rawURL)
	default:
		log.Fatalf("Unsupported database driver %q in DATABASE_URL", u.Driver)
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
}

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using process environment")
	}

	connString := os.Getenv("DATABASE_URL")
	if connString == "" {
		log.Fatalf("DATABASE_URL not set in environment variables")
	}

	db, err := openDatabase(connString)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.UserProfile{},
		&models.Guild{},
		&models.RoleReward{},
		&models.LevelRecord{},
		&models.ErrorLog{},
		&models.Migration{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	if err := services.RunRewardModeBackfill(db); err != nil {
		log.Fatalf("Error running migrations: %v", err)
	}

	token := os.Getenv("DISCORD_BOT_TOKEN")
	if token == "" {
		log.Fatalf("DISCORD_BOT_TOKEN not set in environment variables")
	}

	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		log.Fatalf("Error creating Discord session: %v", err)
	}

	engine := leveling.NewEngine(db)

	dg.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		services.HandleMessageXP(s, m, db, engine)
	})
	dg.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type == discordgo.InteractionApplicationCommand {
			services.HandleSlashCommand(s, i, db, engine)
		}
	})
	dg.AddHandler(func(s *discordgo.Session, g *discordgo.GuildDelete) {
		// Config and its rewards go together; XP records stay in case
		// the bot is re-invited.
		if err := guildService.DeleteGuildConfig(db, g.ID); err != nil {
			log.Printf("Error deleting config for guild %s: %v", g.ID, err)
		}
	})
	dg.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		err := s.UpdateGameStatus(0, "Tracking levels!")
		if err != nil {
			return
		}
	})

	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers | discordgo.IntentsGuildMessages

	err = dg.Open()
	if err != nil {
		log.Fatalf("Error opening Discord session: %v", err)
	}
	defer func(dg *discordgo.Session) {
		err := dg.Close()
		if err != nil {

		}
	}(dg)

	err = services.RegisterCommands(dg)
	if err != nil {
		log.Fatalf("Error registering commands: %v", err)
	}

	scheduler.SetupCron(dg, db, engine)

	log.Println("Bot is running. Press CTRL+C to exit.")
	select {}
}
