package server

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

var startTime = time.Now()

// GET /ping
//
// Always 200; "store" says whether the whispers could be read.
func (s *Server) handlePing(c *gin.Context) {
	result := gin.H{
		"result":     "pong",
		"registered": startTime.UTC(),
		"uptime":     time.Since(startTime).Seconds(),
		"num_cores":  runtime.NumCPU(),
		"store":      "ok",
	}
	whispers, err := s.whispers.List(c.Request.Context())
	if err != nil {
		result["store"] = "offline"
	} else {
		result["whispers"] = len(whispers)
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": result})
}
