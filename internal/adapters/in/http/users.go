package http

import (
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"

	"github.com/labstack/echo/v4"
)

type registerUserRequest struct {
	Name     string `json:"name"`
	Mobile   string `json:"mobile"`
	Email    string `json:"email"`
	UserType string `json:"user_type"`
	MaxLoad  int    `json:"max_load"`
}

type updateAgentRequest struct {
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
	Email  string `json:"email"`
}

type userResponse struct {
	ID          kernel.UUID `json:"id"`
	Name        string      `json:"name"`
	Mobile      string      `json:"mobile"`
	Email       string      `json:"email"`
	UserType    string      `json:"user_type"`
	CurrentLoad int         `json:"current_load"`
	MaxLoad     int         `json:"max_load"`
}

func newUserResponse(u *user.User) userResponse {
	return userResponse{
		ID:          u.ID(),
		Name:        u.Name(),
		Mobile:      u.Mobile(),
		Email:       u.Email(),
		UserType:    u.Type().String(),
		CurrentLoad: u.CurrentLoad(),
		MaxLoad:     u.MaxLoad(),
	}
}

// RegisterUser handles POST /users.
func (s *Server) RegisterUser(c echo.Context) error {
	var req registerUserRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	userType, err := user.ParseType(req.UserType)
	if err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewRegisterUserCommand(kernel.NewUUID(), req.Name, req.Mobile, req.Email, userType, req.MaxLoad)
	if err != nil {
		return s.respondError(c, err)
	}

	u, err := s.h.RegisterUser.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusCreated, newUserResponse(u))
}

// ListAgents handles GET /agents. ?available=true keeps agents with spare
// capacity.
func (s *Server) ListAgents(c echo.Context) error {
	onlyAvailable := false
	if err := echo.QueryParamsBinder(c).Bool("available", &onlyAvailable).BindError(); err != nil {
		return badRequest(c, "available must be a boolean")
	}

	agents, err := s.h.ListAgents.Handle(c.Request().Context(), queries.NewListAgentsQuery(onlyAvailable))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string][]queries.AgentView{"agents": agents})
}

// GetAgent handles GET /agents/:id.
func (s *Server) GetAgent(c echo.Context) error {
	agentID, err := pathUUID(c, "id")
	if err != nil {
		return s.respondError(c, err)
	}

	query, err := queries.NewGetAgentDetailQuery(agentID)
	if err != nil {
		return s.respondError(c, err)
	}

	agent, err := s.h.GetAgentDetail.Handle(c.Request().Context(), query)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, agent)
}

// UpdateAgent handles PATCH /agents/:id. The profile is replaced as a
// whole, so every field is required.
func (s *Server) UpdateAgent(c echo.Context) error {
	agentID, err := pathUUID(c, "id")
	if err != nil {
		return s.respondError(c, err)
	}

	var req updateAgentRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewUpdateAgentProfileCommand(agentID, req.Name, req.Mobile, req.Email)
	if err != nil {
		return s.respondError(c, err)
	}

	u, err := s.h.UpdateAgentProfile.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, newUserResponse(u))
}

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(c.Param(name))
}
