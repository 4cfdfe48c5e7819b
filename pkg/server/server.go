package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/miajio/wordict/pkg/dictionary"
	"github.com/rs/zerolog"
)

// Config HTTP 服务配置
type Config struct {
	Listen          string        // 监听地址
	Parallel        int           // 批量查询并发数
	MaxMatches      int           // /match 返回数量上限
	ShutdownTimeout time.Duration // 优雅退出超时
}

// Server 词典 HTTP 服务
type Server struct {
	cfg    Config
	dict   *dictionary.Engine
	log    zerolog.Logger
	router *gin.Engine
	http   *http.Server
}

type errorResponse struct {
	Error string `json:"error"`
}

// New 创建服务
func New(cfg Config, dict *dictionary.Engine, log zerolog.Logger) *Server {
	if cfg.Parallel <= 0 {
		cfg.Parallel = 8
	}
	if cfg.MaxMatches <= 0 {
		cfg.MaxMatches = 1000
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}

	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		cfg:  cfg,
		dict: dict,
		log:  log.With().Str("log_type", "http").Logger(),
	}

	r := gin.New()
	r.Use(s.loggerMiddleware(), gin.Recovery())
	r.POST("/words", s.handleAddWords)
	r.GET("/search", s.handleSearch)
	r.POST("/search", s.handleSearchBatch)
	r.GET("/match", s.handleMatch)
	r.POST("/learn", s.handleLearn)
	r.GET("/stats", s.handleStats)
	s.router = r
	return s
}

// Handler 返回路由, 便于测试
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe 监听并服务, ctx 取消后优雅退出
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve 在给定 listener 上服务
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.http = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info().Str("listen", ln.Addr().String()).Msg("http server started")
		errc <- s.http.Serve(ln)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(sctx); err != nil {
		s.log.Error().Err(err).Msg("http server shutdown timeout")
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.log.Info().Msg("http server shutdown completely")
	return nil
}

// loggerMiddleware 请求日志, c.Keys 中 log_ 开头的值会写入日志
func (s *Server) loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Keys == nil {
			c.Keys = make(map[string]any)
		}
		start := time.Now()

		c.Next()

		ev := s.log.Info().
			Str("clientip", c.ClientIP()).
			Str("method", c.Request.Method).
			Str("uri", c.Request.URL.RequestURI())
		for k, v := range c.Keys {
			if name, ok := strings.CutPrefix(k, "log_"); ok {
				ev.Any(name, v)
			}
		}
		ev.Int("status_code", c.Writer.Status()).Dur("latency", time.Since(start)).Send()
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, dictionary.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, dictionary.ErrClosed):
		status = http.StatusServiceUnavailable
	}
	c.Set("log_error", err.Error())
	c.JSON(status, errorResponse{Error: err.Error()})
}

type addWordsRequest struct {
	Words []string `json:"words" binding:"required"`
}

// POST /words {"words": ["bad", "dad"]}
func (s *Server) handleAddWords(c *gin.Context) {
	var req addWordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	added, err := s.dict.AddWords(dictionary.SourceAPI, req.Words...)
	c.Set("log_added", added)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": added})
}

// GET /search?pattern=b..
func (s *Server) handleSearch(c *gin.Context) {
	pattern := c.Query("pattern")
	c.Set("log_pattern", pattern)
	found, err := s.dict.Search(pattern)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dictionary.Result{Pattern: pattern, Found: found})
}

type searchBatchRequest struct {
	Patterns []string `json:"patterns" binding:"required"`
}

// POST /search {"patterns": [".ad", "b.."]}
func (s *Server) handleSearchBatch(c *gin.Context) {
	var req searchBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	results, err := s.dict.SearchAll(c.Request.Context(), req.Patterns, s.cfg.Parallel)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// GET /match?pattern=.ad&limit=10
func (s *Server) handleMatch(c *gin.Context) {
	pattern := c.Query("pattern")
	limit := s.cfg.MaxMatches
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid limit"})
			return
		}
		if n < limit {
			limit = n
		}
	}
	c.Set("log_pattern", pattern)

	entries, err := s.dict.Match(pattern, limit)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pattern": pattern, "entries": entries})
}

type learnRequest struct {
	Text string `json:"text" binding:"required"`
}

// POST /learn {"text": "..."}
func (s *Server) handleLearn(c *gin.Context) {
	var req learnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	learned, err := s.dict.LearnFromText(req.Text)
	if err != nil {
		s.fail(c, err)
		return
	}
	if learned == nil {
		learned = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"learned": learned})
}

// GET /stats
func (s *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.dict.Stats())
}
