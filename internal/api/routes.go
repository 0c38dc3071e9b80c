package api

import "github.com/gin-gonic/gin"

func (s *Server) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.GET("/games", s.listGames)
		api.GET("/qr", s.qrHandler)

		g := api.Group("/games/:game")
		{
			g.GET("/cards", s.cardsHandler)
			g.GET("/settings", s.settingsHandler)
			g.POST("/filter", s.filterHandler)

			g.POST("/deck/group", s.groupHandler)
			g.POST("/deck/validate", s.validateHandler)
			g.POST("/deck/share", s.shareHandler)
			g.GET("/deck/decode", s.decodeHandler)
			g.POST("/deck/import", s.importHandler)
			g.POST("/deck/export/text", s.exportTextHandler)
			g.POST("/deck/export/json", s.exportJSONHandler)
			g.POST("/deck/export/octgn", s.exportOCTGNHandler)
			g.POST("/deck/image", s.deckImageHandler)

			g.GET("/decks", s.decksListHandler)
			g.POST("/decks", s.deckSaveHandler)
			g.GET("/decks/:key", s.deckGetHandler)
			g.DELETE("/decks/:key", s.deckDeleteHandler)
		}
	}
}
