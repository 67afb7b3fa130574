// Package api provides the REST API server for als2flp
package api

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/james-see/als2flp/pkg/converter"
)

// @title als2flp API
// @version 1.0
// @description API for converting Ableton Live projects to FL Studio and MIDI
// @host localhost:8080
// @BasePath /api/v1

// StartServer starts the API server on the specified port
func StartServer(port int) error {
	r := gin.Default()

	// CORS middleware
	r.Use(corsMiddleware())

	// Health check
	r.GET("/health", healthCheck)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.POST("/convert/als2flp", handleALSToFLP)
		v1.POST("/convert/als2mid", handleALSToMIDI)
		v1.GET("/formats", listFormats)
	}

	// Swagger docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r.Run(fmt.Sprintf(":%d", port))
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// healthCheck godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "als2flp",
	})
}

// listFormats godoc
// @Summary List supported formats
// @Description Returns a list of supported file formats
// @Tags info
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /api/v1/formats [get]
func listFormats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"formats":     []string{"als", "flp", "midi"},
		"conversions": converter.GetSupportedConversions(),
	})
}

// handleALSToFLP godoc
// @Summary Convert an Ableton Live set to an FL Studio project
// @Description Upload an .als file and receive an .flp file
// @Tags convert
// @Accept multipart/form-data
// @Produce application/octet-stream
// @Param file formData file true ".als file to convert"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Router /api/v1/convert/als2flp [post]
func handleALSToFLP(c *gin.Context) {
	handleConversion(c, "flp")
}

// handleALSToMIDI godoc
// @Summary Convert an Ableton Live set to a standard MIDI file
// @Description Upload an .als file and receive a .mid file
// @Tags convert
// @Accept multipart/form-data
// @Produce application/octet-stream
// @Param file formData file true ".als file to convert"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Router /api/v1/convert/als2mid [post]
func handleALSToMIDI(c *gin.Context) {
	handleConversion(c, "mid")
}

func handleConversion(c *gin.Context, toFormat string) {
	// Get uploaded file
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer func() { _ = file.Close() }()

	// Read file content
	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}

	if format := converter.DetectFormatFromContent(data); format != converter.FormatAbleton {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Uploaded file is not an Ableton Live set"})
		return
	}

	title := strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename))
	if title == "" {
		title = "converted"
	}

	// Perform conversion
	var result []byte
	var contentType string
	switch toFormat {
	case "flp":
		result, err = converter.ProjectToFLP(data, title)
		contentType = "application/octet-stream"
	case "mid":
		result, err = converter.ProjectToMIDI(data, title)
		contentType = "audio/midi"
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported conversion"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	outputName := title + "." + toFormat
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", outputName))
	c.Data(http.StatusOK, contentType, result)
}
