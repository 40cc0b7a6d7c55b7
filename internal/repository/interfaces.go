package repository

import (
	"helmetwatch/internal/dto"
	"helmetwatch/internal/model"
)

// SnapshotRepository defines the interface for archived snapshot operations.
type SnapshotRepository interface {
	// Create operations
	Insert(s *model.Snapshot) (int64, error)

	// Read operations
	GetByID(id int64) (*model.Snapshot, error)
	GetByFilename(filename string) (*model.Snapshot, error)
	GetAll(filter *dto.SnapshotFilters) ([]model.Snapshot, error)
	GetTotalCount(filter *dto.SnapshotFilters) (int, error)
	GetTotalSize() (int64, error)
	Exists(filename string) (bool, error)

	// Delete operations
	DeleteByFilename(filename string) error
	DeleteAll() error
}
