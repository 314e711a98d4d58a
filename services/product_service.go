package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-pos/models"
	"gorm.io/gorm"
)

// maxPrice is the first value that no longer fits decimal(10,2).
var maxPrice = decimal.New(1, 8)

type ProductService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{DB: db, Now: utcNow}
}

func (s *ProductService) Create(ctx context.Context, name string, price decimal.Decimal) (*models.Product, error) {
	name, err := validateProduct(name, price)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	product := models.Product{Name: name, Price: price, CreatedAt: now, UpdatedAt: now}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return fmt.Errorf("create product: %w", err)
		}
		return logActivity(tx, models.EntityProduct, product.ID, models.ActionCreate, nil, now)
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Update replaces name and price of an existing product. Orders already
// placed keep the price they were placed at.
func (s *ProductService) Update(ctx context.Context, id uint, name string, price decimal.Decimal) (*models.Product, error) {
	name, err := validateProduct(name, price)
	if err != nil {
		return nil, err
	}

	var product models.Product
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, id).Error; err != nil {
			return lookupError(err, "product", id)
		}
		now := s.Now()
		product.Name = name
		product.Price = price
		product.UpdatedAt = now
		if err := tx.Save(&product).Error; err != nil {
			return fmt.Errorf("update product %d: %w", id, err)
		}
		return logActivity(tx, models.EntityProduct, product.ID, models.ActionUpdate, nil, now)
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Delete removes a product from the catalog. The row is soft deleted so
// historical orders still resolve it.
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, id).Error; err != nil {
			return lookupError(err, "product", id)
		}
		if err := tx.Delete(&product).Error; err != nil {
			return fmt.Errorf("delete product %d: %w", id, err)
		}
		return logActivity(tx, models.EntityProduct, product.ID, models.ActionDelete, nil, s.Now())
	})
}

func (s *ProductService) Get(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := s.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, lookupError(err, "product", id)
	}
	return &product, nil
}

// Search lists products whose name contains pattern, ignoring case, ordered
// by name. An empty pattern matches every product.
func (s *ProductService) Search(ctx context.Context, pattern string) ([]models.Product, error) {
	q := s.DB.WithContext(ctx).Model(&models.Product{})
	if p := strings.TrimSpace(pattern); p != "" {
		q = q.Where("LOWER(name) LIKE ? ESCAPE '!'", "%"+escapeLike(strings.ToLower(p))+"%")
	}

	products := []models.Product{}
	if err := q.Order("name ASC").Order("id ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return products, nil
}

func validateProduct(name string, price decimal.Decimal) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", newError(ErrValidation, "product name must not be empty")
	}
	if !price.IsPositive() {
		return "", newError(ErrValidation, "product price must be greater than zero")
	}
	if !price.Equal(price.Round(2)) {
		return "", newError(ErrValidation, "product price must have at most two decimal places")
	}
	if price.GreaterThanOrEqual(maxPrice) {
		return "", newError(ErrValidation, "product price must be less than %s", maxPrice.String())
	}
	return name, nil
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
