package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-formfields/pkg/binding"
	"github.com/goliatone/go-formfields/pkg/form"
	"github.com/goliatone/go-formfields/pkg/project"
	"github.com/goliatone/go-formfields/pkg/renderers/vanilla"
	"github.com/goliatone/go-formfields/pkg/screen"
)

const htmlContentType = "text/html; charset=utf-8"

func (s *Server) links() []vanilla.Link {
	return []vanilla.Link{
		{Href: "/controller", Label: "Controller", Description: "Fields bound through explicit controller parameters."},
		{Href: "/accessor", Label: "Reusable", Description: "Fields bound through a shared form accessor."},
	}
}

func (s *Server) landing(c *gin.Context) {
	page := vanilla.PageView{
		Title:       "Reusable form fields",
		Heading:     "Reusable form fields",
		Description: "The same project form built with two binding styles.",
		Links:       s.links(),
		Tokens:      s.theme.Tokens,
		Theme:       s.theme.Theme,
		Variant:     s.theme.Variant,
		Stylesheets: vanilla.Stylesheets(s.theme),
	}
	markup, err := s.kit.WithTheme(s.theme).Page(page)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, htmlContentType, []byte(markup))
}

func (s *Server) showScreen(variant screen.Variant) gin.HandlerFunc {
	return func(c *gin.Context) {
		sc, notifier, err := s.newScreen(variant)
		if err != nil {
			s.fail(c, err)
			return
		}
		s.renderScreen(c, http.StatusOK, sc, notifier)
	}
}

// postScreen rebuilds the screen from the posted controls. Screens are never
// shared between requests.
func (s *Server) postScreen(variant screen.Variant) gin.HandlerFunc {
	return func(c *gin.Context) {
		sc, notifier, err := s.newScreen(variant)
		if err != nil {
			s.fail(c, err)
			return
		}
		if err := c.Request.ParseForm(); err != nil {
			c.String(http.StatusBadRequest, "invalid form body")
			return
		}

		action, err := sc.ApplyPost(c.Request.PostForm)
		if err != nil {
			s.logger.WarnContext(c.Request.Context(), "rejected post", "variant", variant, "error", err)
			c.String(http.StatusBadRequest, err.Error())
			return
		}

		status := http.StatusOK
		if action.Kind == binding.ActionSubmit {
			err := sc.Submit(c.Request.Context())
			switch {
			case err == nil:
			case errors.Is(err, form.ErrInvalid), errors.Is(err, screen.ErrRejected):
				status = http.StatusUnprocessableEntity
			default:
				s.fail(c, err)
				return
			}
		}
		s.renderScreen(c, status, sc, notifier)
	}
}

func (s *Server) newScreen(variant screen.Variant) (*screen.Screen, *screen.MemoryNotifier, error) {
	notifier := &screen.MemoryNotifier{}
	sc, err := screen.New(variant, s.submitter, notifier, screen.WithLogger(s.logger))
	if err != nil {
		return nil, nil, err
	}
	return sc, notifier, nil
}

func (s *Server) renderScreen(c *gin.Context, status int, sc *screen.Screen, notifier *screen.MemoryNotifier) {
	page, err := sc.RenderPage(s.kit, screen.PageOptions{
		Action:        c.Request.URL.Path,
		Notifications: notifier.Drain(),
		Theme:         s.theme,
		Links:         []vanilla.Link{{Href: "/", Label: "Back"}},
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(status, htmlContentType, []byte(page))
}

// createProject is the JSON boundary of the mock handler.
func (s *Server) createProject(c *gin.Context) {
	var payload any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, project.Result{Success: false, Message: "invalid JSON body"})
		return
	}
	result := s.submitter.CreateProject(c.Request.Context(), payload)
	if !result.Success {
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) openAPI(c *gin.Context) {
	c.Data(http.StatusOK, "application/json", s.document)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) fail(c *gin.Context, err error) {
	s.logger.ErrorContext(c.Request.Context(), "request failed", "path", c.Request.URL.Path, "error", err)
	c.String(http.StatusInternalServerError, "internal error")
}
