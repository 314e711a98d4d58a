package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/gorm"
)

type ProductController struct {
	Products *services.ProductService
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{Products: services.NewProductService(db)}
}

type productRequest struct {
	Name  string          `json:"name" binding:"required"`
	Price decimal.Decimal `json:"price"`
}

// GetAllProducts -> products whose name contains ?name=, ordered by name
func (pc *ProductController) GetAllProducts(c *gin.Context) {
	products, err := pc.Products.Search(c.Request.Context(), c.Query("name"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, newProductView(p))
	}
	utils.RespondJSON(c, http.StatusOK, "List of products", views)
}

func (pc *ProductController) GetProductByID(c *gin.Context) {
	id, ok := paramID(c, "product_id")
	if !ok {
		return
	}
	product, err := pc.Products.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product detail", newProductView(*product))
}

func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	product, err := pc.Products.Create(c.Request.Context(), req.Name, req.Price)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Product created: %s (price=%s)", product.Name, utils.FormatMoney(product.Price))
	utils.RespondJSON(c, http.StatusCreated, "Product created", newProductView(*product))
}

func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := paramID(c, "product_id")
	if !ok {
		return
	}
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	product, err := pc.Products.Update(c.Request.Context(), id, req.Name, req.Price)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product updated", newProductView(*product))
}

func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := paramID(c, "product_id")
	if !ok {
		return
	}
	if err := pc.Products.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Product %d deleted", id)
	utils.RespondJSON(c, http.StatusOK, "Product deleted", gin.H{
		"id": id,
	})
}
