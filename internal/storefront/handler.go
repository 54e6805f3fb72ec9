package storefront

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Catalog *Catalog
	Options Options
}

func NewHandler(c *Catalog, opts Options) *Handler {
	return &Handler{Catalog: c, Options: opts}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.health)
	rg.GET("/ready", h.ready)
	rg.GET("/filters", h.filters)
	rg.GET("/products", h.list)              // GET /products?brand=&type=
	rg.GET("/products/:id", h.detailByPath)  // GET /products/:id?variant=
	rg.GET("/product-details", h.detailByQS) // GET /product-details?id=&variant=
	rg.GET("/groups/:title", h.group)
}

// RegisterAdminRoutes mounts operator endpoints. rg is expected to carry auth.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/reload", h.reload)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ready reports 503 until the first catalog load has happened, even if that
// load produced an empty catalog.
func (h *Handler) ready(c *gin.Context) {
	s := h.Catalog.Snapshot()
	if s.Version == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "loading"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"version":   s.Version,
		"products":  len(s.Products),
		"loaded_at": s.LoadedAt,
	})
}

func (h *Handler) filters(c *gin.Context) {
	c.JSON(http.StatusOK, h.Options)
}

func (h *Handler) list(c *gin.Context) {
	f := Filter{Brand: c.Query("brand"), Type: c.Query("type")}.normalized()
	s := h.Catalog.Snapshot()
	items := Tiles(s.Products, h.Options, f)

	c.JSON(http.StatusOK, gin.H{
		"version": s.Version,
		"brand":   f.Brand,
		"type":    f.Type,
		"total":   len(items),
		"items":   items,
	})
}

func (h *Handler) detailByPath(c *gin.Context) {
	h.detail(c, c.Param("id"), c.Query("variant"))
}

func (h *Handler) detailByQS(c *gin.Context) {
	h.detail(c, c.Query("id"), c.Query("variant"))
}

func (h *Handler) detail(c *gin.Context, id, variant string) {
	page := BuildDetailPage(h.Catalog.Snapshot().Products, id, variant)
	if !page.Found() {
		c.JSON(http.StatusNotFound, page)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) group(c *gin.Context) {
	g, ok := LookupGroup(h.Catalog.Snapshot().Products, c.Param("title"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, g)
}

func (h *Handler) reload(c *gin.Context) {
	s := h.Catalog.Reload(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"version":   s.Version,
		"products":  len(s.Products),
		"loaded_at": s.LoadedAt,
	})
}
