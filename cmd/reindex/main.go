package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"helmetwatch/internal/model"
	"helmetwatch/internal/repository/sqlite"
	"helmetwatch/internal/service/storage"
)

// reindex rebuilds the snapshot index from the files on disk, adding rows
// for snapshots the database does not know about.
func main() {
	snapshotsDir := flag.String("snapshots", "snapshots", "Directory containing snapshots")
	dbPath := flag.String("db", filepath.Join("data", "snapshots.db"), "Database path")
	flag.Parse()

	fmt.Printf("Indexing snapshots from %s into %s\n", *snapshotsDir, *dbPath)

	db, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	repo := sqlite.NewSnapshotRepository(db)

	files, err := os.ReadDir(*snapshotsDir)
	if err != nil {
		log.Fatalf("Failed to read snapshots directory: %v", err)
	}

	added, known, skipped := 0, 0, 0
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".jpg" {
			continue
		}

		exists, err := repo.Exists(file.Name())
		if err != nil {
			log.Fatalf("Failed to query database: %v", err)
		}
		if exists {
			known++
			continue
		}

		timestamp, camera, err := storage.ParseFilename(file.Name())
		if err != nil {
			log.Printf("⚠️  Skipping %s: %v", file.Name(), err)
			skipped++
			continue
		}

		info, err := file.Info()
		if err != nil {
			log.Printf("⚠️  Failed to get info for %s: %v", file.Name(), err)
			skipped++
			continue
		}

		_, err = repo.Insert(&model.Snapshot{
			Filename:  file.Name(),
			Camera:    camera,
			Timestamp: timestamp,
			FilePath:  filepath.Join(*snapshotsDir, file.Name()),
			FileSize:  info.Size(),
		})
		if err != nil {
			log.Printf("⚠️  Failed to index %s: %v", file.Name(), err)
			skipped++
			continue
		}
		added++
	}

	fmt.Printf("✅ Indexed %d new snapshots (%d already known)\n", added, known)
	if skipped > 0 {
		fmt.Printf("⚠️  Skipped %d files (invalid format or errors)\n", skipped)
	}

	total, err := repo.GetTotalCount(nil)
	if err == nil {
		size, _ := repo.GetTotalSize()
		fmt.Printf("\n📊 Archive: %d snapshots, %d bytes\n", total, size)
	}
}
