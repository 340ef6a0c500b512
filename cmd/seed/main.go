package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/oggyb/zensend-gateway/internal/config"
	"github.com/oggyb/zensend-gateway/internal/db/gormdb"
	domain "github.com/oggyb/zensend-gateway/internal/domain/message"
	"github.com/oggyb/zensend-gateway/internal/logger"
	mesgRepo "github.com/oggyb/zensend-gateway/internal/repository/gorm/message"
)

const seedCount = 50

func main() {
	ctx := context.Background()

	cfg := config.New()

	log, err := logger.Init(logger.Config(cfg.Log), cfg.IsDevelopment())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := gormdb.New(cfg.PostgresDSN(), log)
	if err != nil {
		log.Fatal("[Seed] Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	log.Info("[Seed] Connected to database", zap.String("name", cfg.DB.Name))

	if err := db.Migrate(&mesgRepo.MessageModel{}); err != nil {
		log.Fatal("[Seed] AutoMigrate failed", zap.Error(err))
	}
	log.Info("[Seed] Messages table is up to date.")

	repo := mesgRepo.NewRepository(db)

	for i := 0; i < seedCount; i++ {
		// Use the domain constructor so seeded rows obey the same rules as API input.
		msg, err := domain.NewMessage(randomDraft(i + 1))
		if err != nil {
			log.Fatal("[Seed] Invalid draft", zap.Int("n", i+1), zap.Error(err))
		}

		if err := repo.Save(ctx, msg); err != nil {
			log.Fatal("[Seed] Failed to save message", zap.Int("n", i+1), zap.Error(err))
		}
	}

	log.Info("[Seed] Done", zap.Int("inserted", seedCount))
}

// randomDraft builds a pending message to one to three fake UK mobile numbers.
func randomDraft(i int) domain.Draft {
	numbers := make([]string, rand.Intn(3)+1)
	for j := range numbers {
		numbers[j] = fmt.Sprintf("447700%06d", rand.Intn(1000000))
	}

	d := domain.Draft{
		Originator: "ZenSend",
		Body:       fmt.Sprintf("Seed message #%d sent at %s", i, time.Now().Format("15:04:05")),
		Numbers:    numbers,
	}
	if i%5 == 0 {
		d.Encoding = "ucs2"
		d.Body += " ✓"
	}
	return d
}
