package services

import (
	"context"
	"fmt"

	"github.com/yeremiapane/restaurant-pos/models"
	"gorm.io/gorm"
)

type TableService struct {
	DB *gorm.DB
}

func NewTableService(db *gorm.DB) *TableService {
	return &TableService{DB: db}
}

func (s *TableService) ListTables(ctx context.Context) ([]models.Table, error) {
	tables := []models.Table{}
	if err := s.DB.WithContext(ctx).Order("table_number ASC").Find(&tables).Error; err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return tables, nil
}

func (s *TableService) GetTable(ctx context.Context, id uint) (*models.Table, error) {
	var table models.Table
	if err := s.DB.WithContext(ctx).First(&table, id).Error; err != nil {
		return nil, lookupError(err, "table", id)
	}
	return &table, nil
}
