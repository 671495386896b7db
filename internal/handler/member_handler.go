package handler

import (
	"errors"
	"net/http"

	"questboard/internal/model"
	"questboard/internal/progression"
	"questboard/internal/repository"

	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	memberRepo   *repository.MemberRepository
	progressRepo repository.ProgressRepositoryInterface
}

func NewMemberHandler(memberRepo *repository.MemberRepository, progressRepo repository.ProgressRepositoryInterface) *MemberHandler {
	return &MemberHandler{
		memberRepo:   memberRepo,
		progressRepo: progressRepo,
	}
}

// MemberRequest представляет запрос на создание участника
type MemberRequest struct {
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"omitempty,email"`
	UserID string `json:"user_id" binding:"required"`
	Avatar string `json:"avatar"`
}

// MemberUpdateRequest представляет частичное обновление участника
type MemberUpdateRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Avatar *string `json:"avatar"`
}

// XPRequest представляет запрос на начисление XP. Amount — указатель, чтобы
// нулевое значение не отбрасывалось валидатором required.
type XPRequest struct {
	Amount *int `json:"amount" binding:"required"`
}

// Create создает нового участника в локальной коллекции и авторитетном хранилище
// @Summary  Create member
// @Tags     Members
// @Accept   json
// @Produce  json
// @Param    member body MemberRequest true "Member"
// @Success  201 {object} model.Member
// @Router   /members [post]
func (h *MemberHandler) Create(c *gin.Context) {
	var req MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	member := &model.Member{
		Name:   req.Name,
		Email:  req.Email,
		UserID: req.UserID,
		Avatar: req.Avatar,
	}

	if _, err := h.memberRepo.Create(c.Request.Context(), member); err != nil {
		if errors.Is(err, repository.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create member"})
		return
	}

	// The authoritative row shares the generated id. If it cannot be
	// created, the local record must not outlive it: roll the copy back so
	// the UI never shows a member whose XP path would 404.
	if err := h.progressRepo.Create(c.Request.Context(), member); err != nil {
		_ = h.memberRepo.Delete(c.Request.Context(), member.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create member"})
		return
	}

	c.JSON(http.StatusCreated, member)
}

// GetAll возвращает всех участников
func (h *MemberHandler) GetAll(c *gin.Context) {
	members, err := h.memberRepo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve members"})
		return
	}
	c.JSON(http.StatusOK, members)
}

// GetByID возвращает участника по ID
func (h *MemberHandler) GetByID(c *gin.Context) {
	member, err := h.memberRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve member"})
		return
	}
	c.JSON(http.StatusOK, member)
}

// Update обновляет данные участника
func (h *MemberHandler) Update(c *gin.Context) {
	var req MemberUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	err := h.memberRepo.Update(c.Request.Context(), c.Param("id"), repository.MemberUpdate{
		Name:   req.Name,
		Email:  req.Email,
		Avatar: req.Avatar,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrMemberNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		case errors.Is(err, repository.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update member"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member updated"})
}

// Delete удаляет участника из обеих коллекций
func (h *MemberHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.memberRepo.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete member"})
		return
	}
	if err := h.progressRepo.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete member"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member deleted"})
}

// AddXP выполняет авторитетный атомарный инкремент XP
// @Summary  Increment member XP
// @Tags     Members
// @Accept   json
// @Produce  json
// @Param    id  path  string    true "Member ID"
// @Param    xp  body  XPRequest true "Amount"
// @Success  200 {object} map[string]interface{}
// @Router   /members/{id}/xp [post]
func (h *MemberHandler) AddXP(c *gin.Context) {
	var req XPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	member, leveledUp, err := h.progressRepo.AddXP(c.Request.Context(), c.Param("id"), *req.Amount)
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add XP"})
		return
	}

	// Best-effort refresh of the local copy; polling subscribers pick it up.
	_ = h.memberRepo.SetProgress(c.Request.Context(), member.ID, member.XP, member.Level)

	c.JSON(http.StatusOK, gin.H{
		"member":       member,
		"was_level_up": leveledUp,
	})
}

// GetProgress возвращает сводку прогресса по авторитетному значению XP
func (h *MemberHandler) GetProgress(c *gin.Context) {
	member, err := h.progressRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve member"})
		return
	}

	c.JSON(http.StatusOK, progression.Summarize(member.XP))
}
