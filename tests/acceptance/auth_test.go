package acceptance

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/galexandre/showtrack/internal/dto"
)

func (s *Suite) register(email string) dto.AuthResponse {
	reqBody := dto.RegisterRequest{
		Name:     "Ana Silva",
		Email:    email,
		Password: "Password123",
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(
		s.BaseURL+"/api/v1/auth/register",
		"application/json",
		bytes.NewBuffer(body),
	)
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusCreated, resp.StatusCode, "Registration should succeed")

	var authResp dto.AuthResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&authResp))
	return authResp
}

func (s *Suite) authorizedRequest(method, path, token string, payload any) *http.Response {
	var body bytes.Buffer
	if payload != nil {
		s.Require().NoError(json.NewEncoder(&body).Encode(payload))
	}

	req, err := http.NewRequest(method, s.BaseURL+path, &body)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *Suite) TestRegister_Success() {
	authResp := s.register("test@example.com")

	s.NotEmpty(authResp.AccessToken)
	s.Equal("Bearer", authResp.TokenType)
	s.NotZero(authResp.ExpiresIn)
	s.Equal("test@example.com", authResp.User.Email)
	s.Equal("Ana Silva", authResp.User.Name)
	s.NotEmpty(authResp.User.ID)
}

func (s *Suite) TestRegister_DuplicateEmail() {
	s.register("duplicate@example.com")

	reqBody := dto.RegisterRequest{
		Name:     "Ana Silva",
		Email:    "duplicate@example.com",
		Password: "Password123",
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(
		s.BaseURL+"/api/v1/auth/register",
		"application/json",
		bytes.NewBuffer(body),
	)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusConflict, resp.StatusCode)

	var errResp dto.ErrorResponse
	json.NewDecoder(resp.Body).Decode(&errResp)
	s.Equal("Conflict", errResp.Error)
}

func (s *Suite) TestRegister_InvalidEmail() {
	reqBody := dto.RegisterRequest{
		Name:     "Ana Silva",
		Email:    "invalid-email",
		Password: "Password123",
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(
		s.BaseURL+"/api/v1/auth/register",
		"application/json",
		bytes.NewBuffer(body),
	)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestRegister_ShortPassword() {
	reqBody := dto.RegisterRequest{
		Name:     "Ana Silva",
		Email:    "test@example.com",
		Password: "short",
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(
		s.BaseURL+"/api/v1/auth/register",
		"application/json",
		bytes.NewBuffer(body),
	)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestLogin_Success() {
	s.register("login@example.com")

	loginReq := dto.LoginRequest{
		Email:    "login@example.com",
		Password: "Password123",
	}
	body, _ := json.Marshal(loginReq)

	resp, err := http.Post(
		s.BaseURL+"/api/v1/auth/login",
		"application/json",
		bytes.NewBuffer(body),
	)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var authResp dto.AuthResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&authResp))

	s.NotEmpty(authResp.AccessToken)
	s.Equal("Bearer", authResp.TokenType)
	s.Equal("login@example.com", authResp.User.Email)
}

func (s *Suite) TestLogin_InvalidCredentials() {
	s.register("ana@example.com")

	unknownEmail := dto.LoginRequest{
		Email:    "nonexistent@example.com",
		Password: "Password123",
	}
	wrongPassword := dto.LoginRequest{
		Email:    "ana@example.com",
		Password: "wrong-password",
	}

	var messages []string
	for _, loginReq := range []dto.LoginRequest{unknownEmail, wrongPassword} {
		body, _ := json.Marshal(loginReq)
		resp, err := http.Post(
			s.BaseURL+"/api/v1/auth/login",
			"application/json",
			bytes.NewBuffer(body),
		)
		s.Require().NoError(err)

		s.Equal(http.StatusUnauthorized, resp.StatusCode)

		var errResp dto.ErrorResponse
		json.NewDecoder(resp.Body).Decode(&errResp)
		resp.Body.Close()
		messages = append(messages, errResp.Message)
	}

	// Unknown email and wrong password answer identically
	s.Equal(messages[0], messages[1])
}

func (s *Suite) TestGetMe() {
	authResp := s.register("me@example.com")

	resp := s.authorizedRequest(http.MethodGet, "/api/v1/users/me", authResp.AccessToken, nil)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var user dto.UserResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&user))
	s.Equal(authResp.User.ID, user.ID)
	s.Equal("me@example.com", user.Email)
}

func (s *Suite) TestGetMe_NoToken() {
	resp, err := http.Get(s.BaseURL + "/api/v1/users/me")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestUpdateMe() {
	authResp := s.register("update@example.com")

	name := "Ana Souza"
	resp := s.authorizedRequest(http.MethodPatch, "/api/v1/users/me", authResp.AccessToken, dto.UserPatch{Name: &name})
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var user dto.UserInfo
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&user))
	s.Equal("Ana Souza", user.Name)
	s.Equal("update@example.com", user.Email)
}

func (s *Suite) TestDeleteMe() {
	authResp := s.register("delete@example.com")

	resp := s.authorizedRequest(http.MethodDelete, "/api/v1/users/me", authResp.AccessToken, nil)
	resp.Body.Close()
	s.Equal(http.StatusNoContent, resp.StatusCode)

	// The account is gone
	resp = s.authorizedRequest(http.MethodGet, "/api/v1/users/me", authResp.AccessToken, nil)
	defer resp.Body.Close()
	s.Equal(http.StatusNotFound, resp.StatusCode)
}
