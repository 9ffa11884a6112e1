package controllers

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UploadImage menerima file multipart "file" dan meneruskannya ke media host.
func (ctrl *Controller) UploadImage(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "No file uploaded. Please select an image file.")
		return
	}
	f, err := header.Open()
	if err != nil {
		badRequest(c, "Failed to read uploaded file")
		return
	}
	defer f.Close()

	// Baca maksimal satu byte lebih dari batas agar file besar tetap ditolak
	// tanpa dimuat seluruhnya.
	data, err := io.ReadAll(io.LimitReader(f, ctrl.Media.MaxBytes()+1))
	if err != nil {
		badRequest(c, "Failed to read uploaded file")
		return
	}

	url, err := ctrl.Media.Ingest(c.Request.Context(), data, header.Filename)
	if err != nil {
		respondError(c, err)
		return
	}
	log.Printf("✅ File uploaded successfully: %s (%.1fMB)", header.Filename, float64(len(data))/(1024*1024))
	c.JSON(http.StatusOK, gin.H{"url": url})
}
