package server

import (
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	strip "github.com/schollz/html-strip-tags-go"
	"github.com/whisperchain/whisperchain/src/logging"
	"github.com/whisperchain/whisperchain/src/reaction"
	"github.com/whisperchain/whisperchain/src/whisper"
)

// MaxUsernameLength bounds the name given at sign up.
const MaxUsernameLength = 40

type postWhisperRequest struct {
	Text string `json:"text"`
}

type signupRequest struct {
	Username string `json:"username"`
}

// GET /api/v1/whispers
func (s *Server) GetWhispers(c *gin.Context) {
	whispers, err := s.whispers.List(c.Request.Context())
	if err != nil {
		s.apiErrorHandler(c, http.StatusInternalServerError, err)
		return
	}
	s.apiSuccessHandler(c, gin.H{"whispers": whispers})
}

// POST /api/v1/wallet
func (s *Server) ConnectWallet(c *gin.Context) {
	address, err := s.wallets.ConnectWallet(c.Request.Context())
	if err != nil {
		s.apiErrorHandler(c, http.StatusInternalServerError, err)
		return
	}
	s.setWallet(address)
	s.apiSuccessHandler(c, gin.H{"address": address})
}

// POST /api/v1/signup
//
// The name only greets this session on the wall, it is never stored and
// never attached to a whisper.
func (s *Server) Signup(c *gin.Context) {
	var p signupRequest
	if err := c.ShouldBindJSON(&p); err != nil {
		s.apiErrorHandler(c, http.StatusBadRequest, err)
		return
	}
	name := strings.TrimSpace(strip.StripTags(p.Username))
	if name == "" {
		s.apiErrorHandler(c, http.StatusBadRequest, errors.New("username is required"))
		return
	}
	if utf8.RuneCountInString(name) > MaxUsernameLength {
		s.apiErrorHandler(c, http.StatusBadRequest, errors.Errorf("username is longer than %d characters", MaxUsernameLength))
		return
	}
	s.setUsername(name)
	s.apiSuccessHandler(c, gin.H{"username": name})
}

// POST /api/v1/whispers
func (s *Server) PostWhisper(c *gin.Context) {
	if s.Wallet() == "" {
		s.apiErrorHandler(c, http.StatusForbidden, errors.New("connect your wallet first"))
		return
	}
	var p postWhisperRequest
	if err := c.ShouldBindJSON(&p); err != nil {
		s.apiErrorHandler(c, http.StatusBadRequest, err)
		return
	}
	w, err := s.whispers.Compose(c.Request.Context(), p.Text)
	switch errors.Cause(err) {
	case nil:
	case whisper.ErrEmptyWhisper, whisper.ErrWhisperTooLong:
		s.apiErrorHandler(c, http.StatusBadRequest, err)
		return
	default:
		s.apiErrorHandler(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "ok", "data": gin.H{"whisper": w}})
}

// POST /api/v1/whispers/:index/reactions/:category
func (s *Server) PostReaction(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		s.apiErrorHandler(c, http.StatusBadRequest, errors.Errorf("bad index '%s'", c.Param("index")))
		return
	}
	category, err := reaction.Parse(c.Param("category"))
	if err != nil {
		s.apiErrorHandler(c, http.StatusBadRequest, err)
		return
	}
	counts, err := s.whispers.React(c.Request.Context(), index, category)
	switch errors.Cause(err) {
	case nil:
	case whisper.ErrWhisperNotFound:
		s.apiErrorHandler(c, http.StatusNotFound, err)
		return
	default:
		s.apiErrorHandler(c, http.StatusInternalServerError, err)
		return
	}
	s.apiSuccessHandler(c, gin.H{
		"index":           index,
		"count":           counts.Get(category),
		"total":           counts.Total(),
		"reaction_counts": counts,
	})
}

func (s *Server) apiSuccessHandler(c *gin.Context, data gin.H) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": data})
}

func (s *Server) apiErrorHandler(c *gin.Context, code int, err error) {
	if code >= http.StatusInternalServerError {
		logging.Log.Error(err)
	} else {
		logging.Log.Debug(err)
	}
	c.JSON(code, gin.H{"status": "error", "error": err.Error()})
}
