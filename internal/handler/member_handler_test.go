package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"questboard/internal/blob"
	"questboard/internal/handler"
	"questboard/internal/model"
	"questboard/internal/repository"
	"questboard/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Мок авторитетного репозитория прогресса
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Create(ctx context.Context, member *model.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockProgressRepository) GetByID(ctx context.Context, id string) (*model.Member, error) {
	args := m.Called(ctx, id)
	member := args.Get(0)
	if member == nil {
		return nil, args.Error(1)
	}
	return member.(*model.Member), args.Error(1)
}

func (m *MockProgressRepository) AddXP(ctx context.Context, memberID string, amount int) (*model.Member, bool, error) {
	args := m.Called(ctx, memberID, amount)
	member := args.Get(0)
	if member == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return member.(*model.Member), args.Bool(1), args.Error(2)
}

func (m *MockProgressRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupMemberTest(t *testing.T) (*gin.Engine, *repository.MemberRepository, *MockProgressRepository) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	b, err := blob.NewFileBlob(t.TempDir())
	assert.NoError(t, err)
	memberRepo := repository.NewMemberRepository(store.New(b))
	mockProgress := new(MockProgressRepository)

	memberHandler := handler.NewMemberHandler(memberRepo, mockProgress)
	r.POST("/members", memberHandler.Create)
	r.GET("/members/:id", memberHandler.GetByID)
	r.POST("/members/:id/xp", memberHandler.AddXP)
	r.GET("/members/:id/progress", memberHandler.GetProgress)

	return r, memberRepo, mockProgress
}

func TestMemberCreate_Success(t *testing.T) {
	// Arrange
	router, memberRepo, mockProgress := setupMemberTest(t)
	mockProgress.On("Create", mock.Anything, mock.AnythingOfType("*model.Member")).Return(nil)

	reqBody := handler.MemberRequest{Name: "Ana", Email: "ana@example.com", UserID: "u1"}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/members", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusCreated, resp.Code)

	var created model.Member
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 0, created.XP)
	assert.Equal(t, 1, created.Level)

	// The local collection holds the member too.
	members, err := memberRepo.GetAll(context.Background())
	assert.NoError(t, err)
	assert.Len(t, members, 1)
	mockProgress.AssertExpectations(t)
}

func TestMemberCreate_WhitespaceNameRejectedBeforeAnyWrite(t *testing.T) {
	router, memberRepo, mockProgress := setupMemberTest(t)

	// binding:"required" passes (non-empty), repository trimming rejects.
	req, _ := http.NewRequest("POST", "/members", bytes.NewBufferString(`{"name":"  ","user_id":"u1"}`))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)

	members, err := memberRepo.GetAll(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, members)
	mockProgress.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMemberCreate_AuthoritativeFailureRollsBackLocalCopy(t *testing.T) {
	router, memberRepo, mockProgress := setupMemberTest(t)
	mockProgress.On("Create", mock.Anything, mock.AnythingOfType("*model.Member")).
		Return(errors.New("connection refused"))

	req, _ := http.NewRequest("POST", "/members", bytes.NewBufferString(`{"name":"Ana","user_id":"u1"}`))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusInternalServerError, resp.Code)

	// No half-created member is left in the local collection.
	members, err := memberRepo.GetAll(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, members)
	mockProgress.AssertExpectations(t)
}

func TestMemberAddXP_LevelUp(t *testing.T) {
	router, _, mockProgress := setupMemberTest(t)
	updated := &model.Member{ID: "member-1", Name: "Ana", XP: 110, Level: 2}
	mockProgress.On("AddXP", mock.Anything, "member-1", 20).Return(updated, true, nil)

	req, _ := http.NewRequest("POST", "/members/member-1/xp", bytes.NewBufferString(`{"amount":20}`))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Member     model.Member `json:"member"`
		WasLevelUp bool         `json:"was_level_up"`
	}
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.True(t, body.WasLevelUp)
	assert.Equal(t, 110, body.Member.XP)
	assert.Equal(t, 2, body.Member.Level)
	mockProgress.AssertExpectations(t)
}

func TestMemberAddXP_UnknownMember(t *testing.T) {
	router, _, mockProgress := setupMemberTest(t)
	mockProgress.On("AddXP", mock.Anything, "member-ghost", 20).
		Return(nil, false, repository.ErrMemberNotFound)

	req, _ := http.NewRequest("POST", "/members/member-ghost/xp", bytes.NewBufferString(`{"amount":20}`))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	mockProgress.AssertExpectations(t)
}

func TestMemberAddXP_ZeroAmountIsAccepted(t *testing.T) {
	router, _, mockProgress := setupMemberTest(t)
	mockProgress.On("AddXP", mock.Anything, "member-1", 0).
		Return(&model.Member{ID: "member-1", XP: 50, Level: 1}, false, nil)

	req, _ := http.NewRequest("POST", "/members/member-1/xp", bytes.NewBufferString(`{"amount":0}`))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	mockProgress.AssertExpectations(t)
}

func TestMemberAddXP_MalformedBody(t *testing.T) {
	router, _, mockProgress := setupMemberTest(t)

	req, _ := http.NewRequest("POST", "/members/member-1/xp", bytes.NewBufferString(`{"amount":"a lot"}`))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockProgress.AssertNotCalled(t, "AddXP", mock.Anything, mock.Anything, mock.Anything)
}

func TestMemberGetProgress(t *testing.T) {
	router, _, mockProgress := setupMemberTest(t)
	mockProgress.On("GetByID", mock.Anything, "member-1").
		Return(&model.Member{ID: "member-1", XP: 150, Level: 2}, nil)

	req, _ := http.NewRequest("GET", "/members/member-1/progress", nil)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Level          int     `json:"level"`
		XP             int     `json:"xp"`
		Progress       float64 `json:"progress"`
		XPForNextLevel int     `json:"xp_for_next_level"`
	}
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Level)
	assert.Equal(t, 150, body.XP)
	assert.Equal(t, 0.5, body.Progress)
	assert.Equal(t, 200, body.XPForNextLevel)
}
