// Package devserver встроенный дев-бэкенд: реализует все REST-эндпоинты,
// которые потребляет клиент, чтобы витрину можно было разрабатывать и
// тестировать без удалённого API.
package devserver

import (
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Server struct {
	engine *gin.Engine
	store  *Store
}

func NewServer(store *Store) *Server {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	s := &Server{engine: r, store: store}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := s.engine.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		auth.POST("/login", s.login)
		auth.POST("/refresh-token", s.refreshToken)
		auth.GET("/profile", s.profile)

		v1.POST("/users", s.createUser)
		v1.PUT("/users/:id", s.updateUser)

		v1.GET("/products", s.listProducts)
		v1.GET("/products/:id", s.getProduct)
		v1.GET("/products/:id/related", s.relatedProducts)
		v1.GET("/categories", s.listCategories)

		v1.POST("/files/upload", s.uploadFile)
		v1.GET("/files/:name", s.getFile)
	}
}

// Auth handlers
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param input body loginReq true "Credentials"
// @Success 201 {object} domain.Session
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (s *Server) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	sess, err := s.store.Authenticate(req.Email, req.Password)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, sess)
}

type refreshReq struct {
	RefreshToken string `json:"refreshToken"`
}

// @Summary Refresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param input body refreshReq true "Refresh token"
// @Success 201 {object} domain.Session
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/refresh-token [post]
func (s *Server) refreshToken(c *gin.Context) {
	var req refreshReq
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	sess, err := s.store.Refresh(req.RefreshToken)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, sess)
}

// @Summary Current user profile
// @Tags auth
// @Produce json
// @Success 200 {object} domain.User
// @Failure 401 {object} map[string]string
// @Router /auth/profile [get]
func (s *Server) profile(c *gin.Context) {
	u, err := s.store.UserByAccess(bearerToken(c))
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, u)
}

// User handlers
type createUserReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Avatar   string `json:"avatar"`
}

// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Param input body createUserReq true "User"
// @Success 201 {object} domain.User
// @Failure 400 {object} map[string]string
// @Router /users [post]
func (s *Server) createUser(c *gin.Context) {
	var req createUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	u, err := s.store.CreateUser(req.Name, req.Email, req.Password, req.Avatar)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, u)
}

type updateUserReq struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param input body updateUserReq true "Update"
// @Success 200 {object} domain.User
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /users/{id} [put]
func (s *Server) updateUser(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req updateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	u, err := s.store.UpdateUser(id, req.Name, req.Avatar)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, u)
}

// Catalog handlers

// @Summary List products
// @Tags products
// @Produce json
// @Param title query string false "Title contains"
// @Param categoryId query int false "Category"
// @Param price_min query int false "Min price"
// @Param price_max query int false "Max price"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} domain.Product
// @Router /products [get]
func (s *Server) listProducts(c *gin.Context) {
	var f ProductFilter
	f.Title = c.Query("title")
	if v := c.Query("categoryId"); v != "" {
		if x, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.CategoryID = x
		}
	}
	if v := c.Query("price_min"); v != "" {
		if x, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.PriceMin = &x
		}
	}
	if v := c.Query("price_max"); v != "" {
		if x, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.PriceMax = &x
		}
	}
	if v := c.Query("limit"); v != "" {
		if x, err := strconv.Atoi(v); err == nil {
			f.Limit = x
		}
	}
	if v := c.Query("offset"); v != "" {
		if x, err := strconv.Atoi(v); err == nil {
			f.Offset = x
		}
	}
	c.JSON(http.StatusOK, s.store.Products(f))
}

// @Summary Get product by id
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{id} [get]
func (s *Server) getProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	p, err := s.store.Product(id)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Related products
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {array} domain.Product
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{id}/related [get]
func (s *Server) relatedProducts(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	list, err := s.store.Related(id)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} domain.Category
// @Router /categories [get]
func (s *Server) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Categories())
}

// File handlers

// @Summary Upload file
// @Tags files
// @Accept mpfd
// @Produce json
// @Param file formData file true "File"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /files/upload [post]
func (s *Server) uploadFile(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	name := s.store.SaveFile(filepath.Ext(fh.Filename), data)
	c.JSON(http.StatusCreated, gin.H{
		"originalname": fh.Filename,
		"filename":     name,
		"location":     "http://" + c.Request.Host + "/api/v1/files/" + name,
	})
}

// @Summary Download file
// @Tags files
// @Param name path string true "File name"
// @Success 200
// @Failure 404 {object} map[string]string
// @Router /files/{name} [get]
func (s *Server) getFile(c *gin.Context) {
	data, err := s.store.File(c.Param("name"))
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/octet-stream", data)
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	return strings.TrimPrefix(h, "Bearer ")
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func mapErrorToStatus(err error) int {
	switch err {
	case ErrBadCredentials, ErrBadToken:
		return http.StatusUnauthorized
	case ErrEmailTaken:
		return http.StatusBadRequest
	case ErrNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
