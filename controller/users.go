package controller

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"obrafoto/models"
	"obrafoto/repository"
	"obrafoto/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Login verifies an email + CPF pair against the stored hash. Inactive
// accounts are rejected the same way as bad credentials.
func (h *Handler) Login(c *gin.Context) {
	var login models.LoginRequest
	if err := c.ShouldBindJSON(&login); err != nil {
		log.Println(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	validate := validator.New()
	if err := validate.Struct(login); err != nil {
		log.Println(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and cpf are required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := h.users.GetByEmail(ctx, login.Email)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or credential"})
		return
	}
	if !user.Active {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or credential"})
		return
	}
	if err := utils.CompareCpf(login.Cpf, user.CpfHash); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or credential"})
		return
	}

	token, err := utils.SignedToken(h.cfg.JWTSecret, user.Email, user.IsAdmin)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error signing token"})
		return
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     "Bearer",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(1 * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"email":   user.Email,
		"isAdmin": user.IsAdmin,
		"token":   token,
	})
}

// ListUsers returns every account; the credential hash is never serialized.
func (h *Handler) ListUsers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users, err := h.users.List(ctx)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing users"})
		return
	}
	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, users)
}

// CreateUser registers a new account. The email must not already exist;
// the match is exact and case-sensitive.
func (h *Handler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Println(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and cpf are required"})
		return
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		log.Println(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and cpf are required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.users.GetByEmail(ctx, req.Email)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "E-mail already exists"})
		return
	}
	if !errors.Is(err, repository.ErrNotFound) {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking existing user"})
		return
	}

	cpfHash, err := utils.HashCpf(req.Cpf)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error hashing credential"})
		return
	}

	user := &models.User{
		Email:   req.Email,
		CpfHash: cpfHash,
		Active:  true,
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}
	if req.Active != nil {
		user.Active = *req.Active
	}

	if _, err := h.users.Create(ctx, user); err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating user"})
		return
	}
	c.JSON(http.StatusCreated, user)
}

// PatchUser applies a partial update; only the provided fields change and a
// new cpf is rehashed before storage.
func (h *Handler) PatchUser(c *gin.Context) {
	var req models.PatchUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Println(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	patch := map[string]any{}
	if req.Email != "" {
		patch["email"] = req.Email
	}
	if req.Cpf != "" {
		cpfHash, err := utils.HashCpf(req.Cpf)
		if err != nil {
			log.Println(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error hashing credential"})
			return
		}
		patch["cpfHash"] = cpfHash
	}
	if req.IsAdmin != nil {
		patch["isAdmin"] = *req.IsAdmin
	}
	if req.Active != nil {
		patch["active"] = *req.Active
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user *models.User
	var err error
	if len(patch) == 0 {
		user, err = h.users.GetByID(ctx, c.Param("id"))
	} else {
		user, err = h.users.Patch(ctx, c.Param("id"), patch)
	}
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating user"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser hard-deletes an account.
func (h *Handler) DeleteUser(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := h.users.Delete(ctx, c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
