// Package v1 exposes the game core over HTTP. Handlers translate JSON
// requests into orchestrator inputs and structured errors into status
// codes; no game logic lives here.
package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/crawlforge/dungeon-api/internal/entities"
	"github.com/crawlforge/dungeon-api/internal/errors"
	dungeonsvc "github.com/crawlforge/dungeon-api/internal/orchestrators/dungeon"
	fightsvc "github.com/crawlforge/dungeon-api/internal/orchestrators/fight"
	gamesvc "github.com/crawlforge/dungeon-api/internal/orchestrators/game"
)

// Config holds the services the handler exposes
type Config struct {
	DungeonService dungeonsvc.Service
	GameService    gamesvc.Service
	FightService   fightsvc.Service
}

// Validate ensures all required services are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.DungeonService == nil {
		vb.RequiredField("DungeonService")
	}
	if c.GameService == nil {
		vb.RequiredField("GameService")
	}
	if c.FightService == nil {
		vb.RequiredField("FightService")
	}

	return vb.Build()
}

// Handler routes HTTP requests to the game core
type Handler struct {
	dungeons dungeonsvc.Service
	games    gamesvc.Service
	fights   fightsvc.Service
}

// NewHandler creates a handler with the provided services
func NewHandler(cfg *Config) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Handler{
		dungeons: cfg.DungeonService,
		games:    cfg.GameService,
		fights:   cfg.FightService,
	}, nil
}

// Register mounts all v1 routes on the router
func (h *Handler) Register(r gin.IRouter) {
	v1 := r.Group("/v1")

	v1.POST("/dungeons", h.generateDungeon)
	v1.GET("/dungeons/:id", h.getDungeon)

	v1.POST("/games", h.startGame)
	v1.GET("/games/current", h.getGame)
	v1.DELETE("/games/current", h.deleteGame)
	v1.POST("/games/current/move", h.moveHero)

	v1.POST("/fights", h.startFight)
	v1.GET("/fights/current", h.getFight)
	v1.POST("/fights/:id/attack", h.attack)
	v1.POST("/fights/:id/defend", h.defend)
	v1.POST("/fights/:id/flee", h.flee)
	v1.PATCH("/fights/:id", h.updateFight)
	v1.DELETE("/fights/current", h.deleteFight)
}

// abortWithError maps a structured error onto an HTTP status
func abortWithError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	c.AbortWithStatusJSON(code.HTTPStatus(), gin.H{
		"code":    string(code),
		"message": errors.GetMessage(err),
	})
}

func (h *Handler) generateDungeon(c *gin.Context) {
	var req struct {
		Name      string `json:"name"`
		RoomCount int    `json:"room_count"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errors.InvalidArgument("invalid request body"))
		return
	}

	output, err := h.dungeons.Generate(c.Request.Context(), &dungeonsvc.GenerateInput{
		Name:      req.Name,
		RoomCount: req.RoomCount,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, output.Dungeon)
}

func (h *Handler) getDungeon(c *gin.Context) {
	output, err := h.dungeons.Get(c.Request.Context(), &dungeonsvc.GetInput{ID: c.Param("id")})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, output.Dungeon)
}

func (h *Handler) startGame(c *gin.Context) {
	var req struct {
		HeroID      string `json:"hero_id"`
		DungeonName string `json:"dungeon_name"`
		RoomCount   int    `json:"room_count"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errors.InvalidArgument("invalid request body"))
		return
	}

	output, err := h.games.StartGame(c.Request.Context(), &gamesvc.StartGameInput{
		HeroID:      req.HeroID,
		DungeonName: req.DungeonName,
		RoomCount:   req.RoomCount,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"game":    output.Game,
		"dungeon": output.Dungeon,
	})
}

func (h *Handler) getGame(c *gin.Context) {
	output, err := h.games.GetGame(c.Request.Context(), &gamesvc.GetGameInput{})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, output.Game)
}

func (h *Handler) deleteGame(c *gin.Context) {
	output, err := h.games.DeleteGame(c.Request.Context(), &gamesvc.DeleteGameInput{})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": output.Deleted})
}

func (h *Handler) moveHero(c *gin.Context) {
	var req struct {
		X int `json:"x"`
		Y int `json:"y"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errors.InvalidArgument("invalid request body"))
		return
	}

	output, err := h.games.MoveHero(c.Request.Context(), &gamesvc.MoveHeroInput{X: req.X, Y: req.Y})
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp := gin.H{
		"success":         true,
		"position":        output.Position,
		"room_id":         output.RoomID,
		"room_changed":    output.RoomChanged,
		"at_dungeon_exit": output.AtDungeonExit,
	}
	if output.Fight != nil {
		resp["encounter"] = output.Fight
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) startFight(c *gin.Context) {
	var req struct {
		MobID int `json:"mob_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errors.InvalidArgument("invalid request body"))
		return
	}

	output, err := h.fights.StartFight(c.Request.Context(), &fightsvc.StartFightInput{MobID: req.MobID})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, output.Fight)
}

func (h *Handler) getFight(c *gin.Context) {
	output, err := h.fights.GetFight(c.Request.Context(), &fightsvc.GetFightInput{})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, output.Fight)
}

func (h *Handler) attack(c *gin.Context) {
	h.action(c, h.fights.Attack)
}

func (h *Handler) defend(c *gin.Context) {
	h.action(c, h.fights.Defend)
}

func (h *Handler) flee(c *gin.Context) {
	h.action(c, h.fights.Flee)
}

type actionFunc func(ctx context.Context, input *fightsvc.ActionInput) (*fightsvc.ActionOutput, error)

func (h *Handler) action(c *gin.Context, do actionFunc) {
	output, err := do(c.Request.Context(), &fightsvc.ActionInput{FightID: c.Param("id")})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"fight":     output.Fight,
		"hero_hp":   output.HeroHP,
		"game_over": output.GameOver,
	})
}

func (h *Handler) updateFight(c *gin.Context) {
	var req struct {
		Status     *string `json:"status"`
		Turn       *string `json:"turn"`
		TurnNumber *int    `json:"turn_number"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errors.InvalidArgument("invalid request body"))
		return
	}

	input := &fightsvc.UpdateFightInput{
		FightID:    c.Param("id"),
		TurnNumber: req.TurnNumber,
	}
	if req.Status != nil {
		status := entities.FightStatus(*req.Status)
		input.Status = &status
	}
	if req.Turn != nil {
		turn := entities.FightTurn(*req.Turn)
		input.Turn = &turn
	}

	output, err := h.fights.UpdateFight(c.Request.Context(), input)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, output.Fight)
}

func (h *Handler) deleteFight(c *gin.Context) {
	if _, err := h.fights.DeleteFight(c.Request.Context(), &fightsvc.DeleteFightInput{}); err != nil {
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
