package main

import (
	"context"
	"fmt"
	"log"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/content-composer/linkedin-autopilot/internal/domain"
	assetRepo "github.com/content-composer/linkedin-autopilot/internal/repositories/asset"
	"github.com/content-composer/linkedin-autopilot/pkg/config"
	"github.com/content-composer/linkedin-autopilot/pkg/logger"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: assets [add <file>|list|delete <id>]")
	}
	command := os.Args[1]

	_ = godotenv.Load()

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.GetDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	repo := assetRepo.NewPgx(pool, logger.New(logger.Opts{}))

	switch command {
	case "add":
		if len(os.Args) < 3 {
			log.Fatal("Usage: assets add <file>")
		}
		addAsset(ctx, repo, os.Args[2])
	case "list":
		listAssets(ctx, repo)
	case "delete":
		if len(os.Args) < 3 {
			log.Fatal("Usage: assets delete <id>")
		}
		if err := repo.Delete(ctx, os.Args[2]); err != nil {
			log.Fatalf("Failed to delete asset: %v", err)
		}
		fmt.Println("Asset deleted")
	default:
		log.Fatalf("Unknown command: %s", command)
	}
}

func addAsset(ctx context.Context, repo *assetRepo.Pgx, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read file: %v", err)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	id := uuid.NewString()
	err = repo.Create(ctx, id, domain.BinaryAsset{
		Name:       filepath.Base(path),
		MimeType:   mimeType,
		ByteLength: int64(len(data)),
		Bytes:      data,
	})
	if err != nil {
		log.Fatalf("Failed to store asset: %v", err)
	}

	fmt.Printf("Stored %s (%s, %d bytes) as %s\n", filepath.Base(path), mimeType, len(data), id)
	fmt.Println("Reference it from a post's asset_id column or CSV field.")
}

func listAssets(ctx context.Context, repo *assetRepo.Pgx) {
	infos, err := repo.List(ctx)
	if err != nil {
		log.Fatalf("Failed to list assets: %v", err)
	}
	for _, info := range infos {
		fmt.Printf("%s  %s  %s  %d bytes  %s\n",
			info.ID, info.Name, info.MimeType, info.ByteLength,
			info.CreatedAt.Format("2006-01-02 15:04"))
	}
}
