package users

import (
	"net/http"

	"logictraders-backend/db"
	"logictraders-backend/models"
	"logictraders-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetMyProfile returns the profile of the connected user.
// @Summary Get the user's profile
// @Description Return the profile information of the connected user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UserProfile
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Profile not found"
// @Router /users/me [get]
func GetMyProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "User not authenticated in GetMyProfile")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var profile models.UserProfile
	if err := db.DB.First(&profile, "user_id = ?", userID).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Profile not found in GetMyProfile")
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateMyProfile updates the profile of the connected user.
// @Summary Update the user's profile
// @Description Update the profile information of the connected user
// @Tags users
// @Accept json
// @Produce json
// @Param profile body models.UserProfileUpdate true "Profile fields"
// @Security BearerAuth
// @Success 200 {object} models.UserProfile
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Profile not found"
// @Router /users/me [put]
func UpdateMyProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "User not authenticated in UpdateMyProfile")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var profile models.UserProfile
	if err := db.DB.First(&profile, "user_id = ?", userID).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Profile not found in UpdateMyProfile")
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	var input models.UserProfileUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if input.FirstName != "" {
		updates["first_name"] = input.FirstName
	}
	if input.LastName != "" {
		updates["last_name"] = input.LastName
	}
	if input.Country != "" {
		updates["country"] = input.Country
	}
	if input.PhoneNumber != "" {
		updates["phone_number"] = input.PhoneNumber
	}
	if input.TradingExperience != "" {
		switch models.TradingExperience(input.TradingExperience) {
		case models.ExperienceBeginner, models.ExperienceIntermediate, models.ExperienceAdvanced:
			updates["trading_experience"] = input.TradingExperience
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trading experience"})
			return
		}
	}

	if err := db.DB.Model(&profile).Updates(updates).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error updating the profile in UpdateMyProfile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating the profile"})
		return
	}

	utils.LogSuccessWithUser(userID, "Profile updated successfully in UpdateMyProfile")
	c.JSON(http.StatusOK, profile)
}
