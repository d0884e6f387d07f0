package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"prompt-backend/internal/history"
	"prompt-backend/internal/storage"
)

const welcomeMessage = "Welcome to the Prompt Backend! Log in at /login/, submit prompts at /prompt/ and read your history at /history/."

type loginRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type promptRequest struct {
	Prompt *string `json:"prompt"`
}

type promptResponse struct {
	Response string `json:"response"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// bindJSON decodes a body sent without Content-Type as JSON; everything else
// goes through echo's binder.
func bindJSON(c echo.Context, i interface{}) error {
	req := c.Request()
	if req.Header.Get(echo.HeaderContentType) == "" && req.ContentLength != 0 && req.Body != nil {
		return c.Echo().JSONSerializer.Deserialize(c, i)
	}
	return c.Bind(i)
}

func (s *Server) handleRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, messageResponse{Message: welcomeMessage})
}

func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if req.Username == nil || req.Password == nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "username and password are required")
	}
	if !s.creds.Authenticate(*req.Username, *req.Password) {
		s.log.Info().Str("username", *req.Username).Msg("login rejected")
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}
	token := s.tokens.Issue(*req.Username)
	s.log.Info().Str("username", *req.Username).Msg("login succeeded")
	return c.JSON(http.StatusOK, loginResponse{Token: token})
}

func (s *Server) handlePrompt(c echo.Context) error {
	username := usernameFrom(c)
	var req promptRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if req.Prompt == nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "prompt is required")
	}

	now := s.now()
	response := s.responder.Respond(*req.Prompt)
	entry := history.NewEntry(now, *req.Prompt, response)
	if err := s.history.Append(c.Request().Context(), username, entry); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error").SetInternal(err)
	}

	if s.recorder != nil {
		ev := storage.Event{Timestamp: now.UTC(), Username: username, Prompt: *req.Prompt, Response: response}
		if err := s.recorder.AppendInteraction(ev); err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("failed to record interaction")
		}
	}
	return c.JSON(http.StatusOK, promptResponse{Response: response})
}

func (s *Server) handleHistory(c echo.Context) error {
	return c.JSON(http.StatusOK, s.history.Get(usernameFrom(c)))
}

// handleError renders every error as {"detail": "..."}.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	detail := "internal server error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			detail = msg
		} else {
			detail = http.StatusText(code)
		}
	}
	if code >= http.StatusInternalServerError {
		s.log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("request failed")
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, errorResponse{Detail: detail})
	}
	if err != nil {
		s.log.Error().Err(err).Msg("failed to write error response")
	}
}
