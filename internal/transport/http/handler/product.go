package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-admin-console/internal/feature/product"
)

type ProductHandler struct {
	Products *product.Module
	Log      *zap.Logger
	Dev      bool
}

func NewProductHandler(products *product.Module, l *zap.Logger, dev bool) *ProductHandler {
	return &ProductHandler{Products: products, Log: l, Dev: dev}
}

func (h *ProductHandler) Index(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		products []product.Product
		err      error
	)
	q := c.Query("q")
	if q != "" {
		products, err = h.Products.Search(ctx, q)
	} else {
		products, err = h.Products.FindAll(ctx)
	}
	if err != nil {
		h.Log.Error("product list failed", zap.Error(err))
		c.HTML(http.StatusOK, "products_index.html", gin.H{
			"User":           currentUser(c),
			"Products":       []product.Product{},
			"InventoryStats": product.Valuation{},
			"Error":          "Failed to load products",
		})
		return
	}

	stats, err := h.Products.InventoryValue(ctx)
	if err != nil {
		h.Log.Error("inventory valuation failed", zap.Error(err))
		stats = product.Valuation{}
	}

	c.HTML(http.StatusOK, "products_index.html", gin.H{
		"User":           currentUser(c),
		"Products":       products,
		"InventoryStats": stats,
		"Query":          q,
	})
}

func (h *ProductHandler) New(c *gin.Context) {
	c.HTML(http.StatusOK, "product_form.html", gin.H{
		"User":   currentUser(c),
		"Action": "/products",
		"Title":  "New Product",
	})
}

func (h *ProductHandler) Create(c *gin.Context) {
	in, formErr := bindProductForm(c)
	if formErr != "" {
		h.rerenderForm(c, "/products", "New Product", in, formErr)
		return
	}
	if _, err := h.Products.Create(c.Request.Context(), in); err != nil {
		if isValidation(err) {
			h.rerenderForm(c, "/products", "New Product", in, err.Error())
			return
		}
		h.Log.Error("product create failed", zap.Error(err))
		renderError(c, http.StatusInternalServerError, "Failed to create product", err, h.Dev)
		return
	}
	redirect(c, "/products")
}

func (h *ProductHandler) Edit(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		redirect(c, "/products")
		return
	}
	p, err := h.Products.FindByID(c.Request.Context(), id)
	if err != nil {
		h.Log.Error("product lookup failed", zap.Int64("id", id), zap.Error(err))
		redirect(c, "/products")
		return
	}
	if p == nil {
		redirect(c, "/products")
		return
	}
	c.HTML(http.StatusOK, "product_form.html", gin.H{
		"User":    currentUser(c),
		"Action":  "/products/" + c.Param("id"),
		"Title":   "Edit Product",
		"Product": p,
	})
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		redirect(c, "/products")
		return
	}
	in, formErr := bindProductForm(c)
	if formErr != "" {
		h.rerenderForm(c, "/products/"+c.Param("id"), "Edit Product", in, formErr)
		return
	}
	if _, err := h.Products.Update(c.Request.Context(), id, in); err != nil {
		if isValidation(err) {
			h.rerenderForm(c, "/products/"+c.Param("id"), "Edit Product", in, err.Error())
			return
		}
		h.Log.Error("product update failed", zap.Int64("id", id), zap.Error(err))
	}
	redirect(c, "/products")
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err == nil {
		if _, err := h.Products.Delete(c.Request.Context(), id); err != nil {
			h.Log.Error("product delete failed", zap.Int64("id", id), zap.Error(err))
		}
	}
	redirect(c, "/products")
}

// bindProductForm parses the submitted form; the second return value is a
// user-facing message when the numbers do not parse.
func bindProductForm(c *gin.Context) (product.Input, string) {
	in := product.Input{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
	}
	var err error
	if in.Price, err = strconv.ParseFloat(c.PostForm("price"), 64); err != nil {
		return in, "Price must be a number"
	}
	if in.Stock, err = strconv.ParseInt(c.PostForm("stock"), 10, 64); err != nil {
		return in, "Stock must be a whole number"
	}
	return in, ""
}

func (h *ProductHandler) rerenderForm(c *gin.Context, action, title string, in product.Input, msg string) {
	c.HTML(http.StatusOK, "product_form.html", gin.H{
		"User":   currentUser(c),
		"Action": action,
		"Title":  title,
		"Product": &product.Product{
			Name:        in.Name,
			Description: in.Description,
			Price:       in.Price,
			Stock:       in.Stock,
		},
		"Error": msg,
	})
}

func isValidation(err error) bool {
	return errors.Is(err, product.ErrEmptyName) ||
		errors.Is(err, product.ErrNegativePrice) ||
		errors.Is(err, product.ErrNegativeStock)
}
