package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uvceed/pulse-api/geo"
)

// resolveGeo serves the resolved geography for a ZIP.
func (s *Server) resolveGeo(c *gin.Context) {
	zipCode := c.Param("zip")
	if !geo.ValidZip(zipCode) {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidZip)
		return
	}

	g, err := s.resolver.Resolve(zipCode)
	if err != nil {
		if err == geo.ErrZipNotFound {
			abortWithEncoding(c, http.StatusNotFound, errorZipNotFound)
			return
		}
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, g)
}
