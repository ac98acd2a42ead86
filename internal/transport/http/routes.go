package httpt

import (
	_ "shopsample/docs" // swagger spec

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Product Service API
// @version         1.0
// @description     CRUD and paging over the product catalogue.
// @contact.name    API Support
// @contact.email   support@example.com
// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
func (h *ProductHandler) setupRoutes() {
	h.router.GET("/health", h.health)

	products := h.router.Group("/api/products")
	{
		products.GET("", h.listProducts)
		products.POST("", h.createProduct)
		products.GET("/paging", h.pageProducts)
		products.GET("/:id", h.getProduct)
		products.PUT("/:id", h.updateProduct)
		products.DELETE("/:id", h.deleteProduct)
		products.PATCH("/:id/description", h.updateDescription)
	}

	h.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
