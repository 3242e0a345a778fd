package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/wfunc/monopoly-game/internal/game"
	"github.com/wfunc/monopoly-game/internal/repository"
	"github.com/wfunc/monopoly-game/internal/service"
	"github.com/wfunc/monopoly-game/internal/utils"
	"github.com/wfunc/monopoly-game/internal/websocket"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// fixedRoller 固定点数骰子
type fixedRoller struct {
	d1, d2 int
}

func (r *fixedRoller) Roll() (int, int) {
	return r.d1, r.d2
}

// noopScheduler 不触发AI回合的调度器，HTTP测试里保持状态可控
type noopScheduler struct{}

func (noopScheduler) Schedule(gameID, playerID uint, delay time.Duration, fn func()) {}
func (noopScheduler) Cancel(gameID uint)                                            {}
func (noopScheduler) Stop()                                                         {}

// RouterTestSuite HTTP接口测试套件
type RouterTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *Router
	token  string
}

func (s *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.db = repository.SetupTestDB()

	turnEngine := game.NewTurnEngine(s.db, game.Options{
		Roller:    &fixedRoller{d1: 1, d2: 2},
		Scheduler: noopScheduler{},
	})

	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	authService := service.NewAuthService(
		s.db,
		repository.NewUserRepository(s.db),
		repository.NewUserAuthRepository(s.db),
		repository.NewUserSessionRepository(s.db),
		jwtManager,
		zap.NewNop(),
	)

	hub := websocket.NewHub(zap.NewNop())
	s.router = NewRouter(s.db, turnEngine, authService, hub, zap.NewNop())

	// 注册并登录一个测试用户
	s.token = s.registerUser("luffy", "secret123")
}

func (s *RouterTestSuite) TearDownTest() {
	repository.CleanupTestDB(s.db)
}

// do 发送JSON请求
func (s *RouterTestSuite) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.T(), json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.Engine().ServeHTTP(w, req)
	return w
}

func (s *RouterTestSuite) registerUser(username, password string) string {
	w := s.do(http.MethodPost, "/api/v1/auth/register", gin.H{
		"username": username,
		"password": password,
	}, "")
	require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(s.T(), resp.Token)
	return resp.Token
}

// createGame 创建单AI对手的对局并返回视图
func (s *RouterTestSuite) createGame() map[string]interface{} {
	w := s.do(http.MethodPost, "/api/v1/games", gin.H{
		"opponents": []gin.H{{"name": "索隆", "difficulty": "easy"}},
	}, s.token)
	require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())

	var view map[string]interface{}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &view))
	return view
}

// TestHealthCheck 测试健康检查
func (s *RouterTestSuite) TestHealthCheck() {
	w := s.do(http.MethodGet, "/health", nil, "")
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "healthy")
}

// TestAuthFlow 测试注册、登录、查询信息、登出
func (s *RouterTestSuite) TestAuthFlow() {
	w := s.do(http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "luffy",
		"password": "secret123",
	}, "")
	s.Equal(http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))

	w = s.do(http.MethodGet, "/api/v1/auth/profile", nil, resp.Token)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "luffy")

	w = s.do(http.MethodPost, "/api/v1/auth/logout", nil, resp.Token)
	s.Equal(http.StatusOK, w.Code)

	// 登出后令牌失效
	w = s.do(http.MethodGet, "/api/v1/auth/profile", nil, resp.Token)
	s.Equal(http.StatusUnauthorized, w.Code)
}

// TestLoginFailed 测试密码错误
func (s *RouterTestSuite) TestLoginFailed() {
	w := s.do(http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "luffy",
		"password": "wrong",
	}, "")
	s.Equal(http.StatusUnauthorized, w.Code)
}

// TestRequireAuth 测试未认证访问被拒绝
func (s *RouterTestSuite) TestRequireAuth() {
	w := s.do(http.MethodPost, "/api/v1/games", gin.H{"opponents": []gin.H{}}, "")
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, "/api/v1/games/1", nil, "invalid-token")
	s.Equal(http.StatusUnauthorized, w.Code)
}

// TestCreateGame 测试创建对局
func (s *RouterTestSuite) TestCreateGame() {
	view := s.createGame()

	s.Equal("playing", view["status"])
	s.Equal("rolling", view["turn_phase"])
	s.Len(view["players"], 2)
	s.Len(view["properties"], 28)
	s.Len(view["board"], 40)
}

// TestCreateGame_NoOpponents 测试没有AI对手时拒绝创建
func (s *RouterTestSuite) TestCreateGame_NoOpponents() {
	w := s.do(http.MethodPost, "/api/v1/games", gin.H{
		"opponents": []gin.H{},
	}, s.token)
	s.Equal(http.StatusBadRequest, w.Code)
}

// TestRollAndBuyFlow 测试掷骰、购买的完整HTTP流程
func (s *RouterTestSuite) TestRollAndBuyFlow() {
	view := s.createGame()
	gameID := uint(view["id"].(float64))

	// 骰子固定1+2，落在3号可购买格
	w := s.do(http.MethodPost, fmt.Sprintf("/api/v1/games/%d/roll", gameID), nil, s.token)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var after map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &after))
	s.Equal("buying", after["turn_phase"])

	w = s.do(http.MethodPost, fmt.Sprintf("/api/v1/games/%d/buy", gameID), nil, s.token)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &after))
	// 回合交给AI，阶段回到掷骰
	s.Equal("rolling", after["turn_phase"])
}

// TestRoll_WrongPhase 测试阶段不符返回409
func (s *RouterTestSuite) TestRoll_WrongPhase() {
	view := s.createGame()
	gameID := uint(view["id"].(float64))

	w := s.do(http.MethodPost, fmt.Sprintf("/api/v1/games/%d/roll", gameID), nil, s.token)
	s.Require().Equal(http.StatusOK, w.Code)

	// 已在购买阶段，再掷骰被拒
	w = s.do(http.MethodPost, fmt.Sprintf("/api/v1/games/%d/roll", gameID), nil, s.token)
	s.Equal(http.StatusConflict, w.Code)
	s.Contains(w.Body.String(), "WRONG_PHASE")
}

// TestGameAccessControl 测试非房主访问对局被拒
func (s *RouterTestSuite) TestGameAccessControl() {
	view := s.createGame()
	gameID := uint(view["id"].(float64))

	otherToken := s.registerUser("zoro", "secret123")
	w := s.do(http.MethodPost, fmt.Sprintf("/api/v1/games/%d/roll", gameID), nil, otherToken)
	s.Equal(http.StatusForbidden, w.Code)
}

// TestListGames 测试对局列表
func (s *RouterTestSuite) TestListGames() {
	s.createGame()
	s.createGame()

	w := s.do(http.MethodGet, "/api/v1/games?page=1&page_size=10", nil, s.token)
	s.Require().Equal(http.StatusOK, w.Code)

	var resp struct {
		Games []json.RawMessage `json:"games"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Len(resp.Games, 2)
}

// TestGetGame_NotFound 测试查询不存在的对局
func (s *RouterTestSuite) TestGetGame_NotFound() {
	w := s.do(http.MethodGet, "/api/v1/games/9999", nil, s.token)
	s.Equal(http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/api/v1/games/not-a-number", nil, s.token)
	s.Equal(http.StatusBadRequest, w.Code)
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
