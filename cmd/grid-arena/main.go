package main

import (
	"os"

	"github.com/ericogr/grid-arena/internal/api"
	"github.com/ericogr/grid-arena/internal/constants"
	"github.com/ericogr/grid-arena/internal/logging"
	"github.com/ericogr/grid-arena/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Board and timer configuration file. Path may be provided via
	// GRIDARENA_CONFIG or defaults to ./gridarena_config.json in the
	// current working directory.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./gridarena_config.json"
	}
	cfg := loadConfigOrExit(configPath)

	// Allow the DB path to be configured via GRIDARENA_DB. Default to a
	// data/ directory for local development.
	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = "./data/gridarena.db"
	}
	repo := createRepositoryOrExit(dbPath, cfg.Boards)

	manager := service.NewManager(repo, service.Tunables{
		TurnDuration:       cfg.TurnDuration,
		CombatTurnDuration: cfg.CombatTurnDuration,
		PlaybackTick:       cfg.PlaybackTick,
		FleeSuccessChance:  cfg.FleeSuccessChance,
	})
	handler := api.NewRoomHandler(repo, manager)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{constants.HeaderAuthorization, constants.HeaderContentType},
		AllowCredentials: true,
	}))

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.POST(constants.RouteSession, handler.CreateSession)
		apiRoutes.GET(constants.RouteRooms, handler.ListRooms)
		apiRoutes.GET(constants.RouteLeaderboard, handler.ListLeaderboard)
		apiRoutes.GET("/version", handler.GetVersion)

		// Authenticated endpoints
		protected := apiRoutes.Group("")
		protected.Use(api.AuthRequired())

		protected.GET(constants.RouteBoards, handler.ListBoards)
		protected.GET(constants.RouteBoardByName, handler.GetBoard)
		protected.POST(constants.RouteRooms, handler.CreateRoom)
		protected.POST(constants.RouteRoomJoin, handler.JoinRoom)
		protected.GET(constants.RouteRoomSocket, handler.RoomSocket)
	}

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
