// This file is part of Dawstream.
//
// Dawstream is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Dawstream is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Dawstream.  If not, see <https://www.gnu.org/licenses/>.

package server

import (
	"net/http"

	"github.com/dawstream/dawstream/logger"
	"github.com/dawstream/dawstream/track"
	"github.com/gin-gonic/gin"
)

// messages sent in the body of unsuccessful responses
const (
	messageNotFound   = "Track not found."
	messageUnexpected = "Unexpected error occurred."
)

// reply with a JSON message body
func message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}

// save the track in the body of the request. the saved track is returned in
// the response
func (srv *Server) save(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		message(c, http.StatusBadRequest, err.Error())
		return
	}

	p, err := track.DecodeWithTempo(body, srv.cfg.DefaultTempo)
	if err != nil {
		message(c, http.StatusBadRequest, err.Error())
		return
	}

	err = srv.store.Save(DefaultTrack, p)
	if err != nil {
		logger.Log(logger.Allow, logTag, err)
		message(c, http.StatusInternalServerError, messageUnexpected)
		return
	}

	c.JSON(http.StatusOK, p)
}

// restore the saved track
func (srv *Server) restore(c *gin.Context) {
	p, ok, err := srv.store.Restore(DefaultTrack)
	if err != nil {
		logger.Log(logger.Allow, logTag, err)
		message(c, http.StatusInternalServerError, messageUnexpected)
		return
	}
	if !ok {
		message(c, http.StatusNotFound, messageNotFound)
		return
	}

	c.JSON(http.StatusOK, p)
}
