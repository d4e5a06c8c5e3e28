package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"minitask/internal/service"
)

type createTaskRequest struct {
	TaskName string `json:"taskName" binding:"required"`
}

type updateTaskRequest struct {
	ID        service.ID `json:"id" binding:"required"`
	Completed *bool      `json:"completed" binding:"required"`
}

type deleteTaskRequest struct {
	ID service.ID `json:"id" binding:"required"`
}

func (s *Server) handleFetch(c *gin.Context) {
	tasks, err := s.client.Fetch(c.Request.Context(), c.Param("resource"))
	if err != nil {
		s.fail(c, err, "failed to fetch tasks")
		return
	}
	if tasks == nil {
		tasks = []service.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) handlePost(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	if err := s.client.Post(c.Request.Context(), c.Param("resource"), service.NewTask{TaskName: req.TaskName}); err != nil {
		s.fail(c, err, "failed to create task")
		return
	}
	s.logger.Debug().Str("text", req.TaskName).Msg("created task")
	c.Status(http.StatusCreated)
}

func (s *Server) handlePut(c *gin.Context) {
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	update := service.TaskUpdate{ID: req.ID, Completed: *req.Completed}
	if err := s.client.Put(c.Request.Context(), c.Param("resource"), update); err != nil {
		s.fail(c, err, "failed to update task")
		return
	}
	s.logger.Debug().
		Stringer("id", req.ID).
		Bool("completed", update.Completed).
		Msg("updated task")
	c.Status(http.StatusNoContent)
}

func (s *Server) handleDelete(c *gin.Context) {
	var req deleteTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	if err := s.client.Delete(c.Request.Context(), c.Param("resource"), service.TaskRef{ID: req.ID}); err != nil {
		s.fail(c, err, "failed to delete task")
		return
	}
	s.logger.Debug().Stringer("id", req.ID).Msg("deleted task")
	c.Status(http.StatusNoContent)
}

func (s *Server) badRequest(c *gin.Context, err error) {
	s.logger.Warn().Err(err).Msg("failed to bind json")
	abort(c, newBadRequestError(errInvalidRequestBody.Error()))
}

func (s *Server) fail(c *gin.Context, err error, msg string) {
	s.logger.Error().Err(err).Msg(msg)
	abort(c, fromServiceError(err))
}
