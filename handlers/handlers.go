package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"cityguardian/models"
	"cityguardian/service"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

// Handlers represents the HTTP handlers
type Handlers struct {
	service *service.Service
}

// NewHandlers creates new HTTP handlers
func NewHandlers(svc *service.Service) *Handlers {
	return &Handlers{service: svc}
}

// Health handles liveness requests
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "active"})
}

// SendReport handles the multipart intake submission
func (h *Handlers) SendReport(c *gin.Context) {
	name := c.PostForm("name")
	email := c.PostForm("email")
	if name == "" || email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "name and email are required."})
		return
	}

	latitude, err := strconv.ParseFloat(c.PostForm("latitude"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "latitude must be a decimal number."})
		return
	}
	longitude, err := strconv.ParseFloat(c.PostForm("longitude"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "longitude must be a decimal number."})
		return
	}

	sub := &models.ReportSubmission{
		Name:      name,
		Email:     email,
		Complaint: c.PostForm("complaint"),
		Latitude:  latitude,
		Longitude: longitude,
		Address:   c.PostForm("address"),
	}

	if file, err := c.FormFile("image"); err == nil && file != nil {
		image, err := readUpload(file)
		if err != nil {
			log.Errorf("Failed to read uploaded image: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"detail": "could not read uploaded image."})
			return
		}
		sub.Image = image
	}

	resp, err := h.service.ProcessReport(sub)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrDuplicate) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func readUpload(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
