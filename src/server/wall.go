package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/whisperchain/whisperchain/src/logging"
	"github.com/whisperchain/whisperchain/src/utils"
	"github.com/whisperchain/whisperchain/src/whisper"
)

// GET /
//
// A store that cannot be read still gets a page: the wall shows up empty
// and marked offline instead of failing.
func (s *Server) handleWall(c *gin.Context) {
	offline := false
	whispers, err := s.whispers.List(c.Request.Context())
	if err != nil {
		logging.Log.Warnf("wall is offline: %s", err)
		offline = true
		whispers = nil
	}

	// newest first
	newest := make([]whisper.Whisper, len(whispers))
	for i, w := range whispers {
		newest[len(whispers)-1-i] = w
	}

	wallet := s.Wallet()
	c.HTML(http.StatusOK, "index.tmpl", gin.H{
		"Whispers":    newest,
		"Count":       len(newest),
		"Connected":   wallet != "",
		"Username":    s.Username(),
		"Wallet":      utils.Shorten(wallet, 12, 6),
		"Offline":     offline,
		"MaxLength":   whisper.MaxLength,
		"MaxUsername": MaxUsernameLength,
	})
}
