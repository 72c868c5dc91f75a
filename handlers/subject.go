package handlers

import (
	"encoding/json"
	"net/http"

	"medibook/models"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterSubjectHandler creates a subject account and returns a session
// token.
func (h *HandlerBundle) RegisterSubjectHandler(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONFail(c, http.StatusBadRequest, "missing or invalid details")
		return
	}

	token, err := h.Subjects.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		failFromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

// LoginSubjectHandler authenticates a subject and returns a session token.
func (h *HandlerBundle) LoginSubjectHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONFail(c, http.StatusBadRequest, "missing or invalid details")
		return
	}

	token, err := h.Subjects.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		failFromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

// GetSubjectProfileHandler returns the authenticated subject's profile.
func (h *HandlerBundle) GetSubjectProfileHandler(c *gin.Context) {
	subjectID := c.GetString("subjectID")
	profile, err := h.Subjects.GetProfile(c.Request.Context(), subjectID)
	if err != nil {
		failFromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "userData": profile})
}

// UpdateSubjectProfileHandler updates the subject's profile from a
// multipart form. The address field arrives as a JSON string; an optional
// image file is uploaded to external storage.
func (h *HandlerBundle) UpdateSubjectProfileHandler(c *gin.Context) {
	subjectID := c.GetString("subjectID")

	name := c.PostForm("name")
	phone := c.PostForm("phone")
	dob := c.PostForm("dob")
	gender := c.PostForm("gender")
	if name == "" || phone == "" {
		utils.JSONFail(c, http.StatusBadRequest, "missing details")
		return
	}

	var address models.Address
	if raw := c.PostForm("address"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &address); err != nil {
			utils.JSONFail(c, http.StatusBadRequest, "invalid address")
			return
		}
	}

	if err := h.Subjects.UpdateProfile(c.Request.Context(), subjectID, name, phone, address, dob, gender); err != nil {
		failFromError(c, err)
		return
	}

	if fileHeader, err := c.FormFile("image"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			utils.JSONFail(c, http.StatusBadRequest, "invalid image file")
			return
		}
		defer file.Close()

		imageURL, err := h.Storage.UploadImage(c.Request.Context(), file, "subjects")
		if err != nil {
			utils.GetLogger().Error("Profile image upload failed", zap.Error(err), zap.String("subjectID", subjectID))
			utils.JSONFail(c, http.StatusInternalServerError, "image upload failed")
			return
		}
		if err := h.Subjects.SetImage(c.Request.Context(), subjectID, imageURL); err != nil {
			failFromError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile Updated"})
}
