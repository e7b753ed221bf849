package acceptance

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/galexandre/showtrack/internal/dto"
)

func (s *Suite) TestPasswordRecover_KnownEmail() {
	s.register("recover@example.com")

	reqBody := dto.RecoverPasswordRequest{Email: "recover@example.com"}
	body, _ := json.Marshal(reqBody)

	// Mail delivery is best-effort; the endpoint answers 200 even when no
	// SMTP server is listening
	resp, err := http.Post(
		s.BaseURL+"/api/v1/password/recover",
		"application/json",
		bytes.NewBuffer(body),
	)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var row struct {
		Code      string
		ExpiresAt time.Time
	}
	err = s.Postgres.DB.QueryRow(
		"SELECT code, expires_at FROM password_resets ORDER BY created_at DESC LIMIT 1",
	).Scan(&row.Code, &row.ExpiresAt)
	s.Require().NoError(err)
	s.Regexp(`^[0-9]{6}$`, row.Code)
	s.WithinDuration(time.Now().Add(30*time.Minute), row.ExpiresAt, 10*time.Second)
}

func (s *Suite) TestPasswordRecover_UnknownEmail() {
	reqBody := dto.RecoverPasswordRequest{Email: "nobody@example.com"}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(
		s.BaseURL+"/api/v1/password/recover",
		"application/json",
		bytes.NewBuffer(body),
	)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *Suite) TestPasswordVerify_FullFlow() {
	s.register("verify@example.com")

	body, _ := json.Marshal(dto.RecoverPasswordRequest{Email: "verify@example.com"})
	resp, err := http.Post(s.BaseURL+"/api/v1/password/recover", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var code string
	err = s.Postgres.DB.QueryRow(
		"SELECT code FROM password_resets ORDER BY created_at DESC LIMIT 1",
	).Scan(&code)
	s.Require().NoError(err)

	body, _ = json.Marshal(dto.VerifyCodeRequest{Code: code, NewPassword: "BrandNewPassword"})
	resp, err = http.Post(s.BaseURL+"/api/v1/password/verify", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	// The new password works, the old one does not
	body, _ = json.Marshal(dto.LoginRequest{Email: "verify@example.com", Password: "BrandNewPassword"})
	resp, err = http.Post(s.BaseURL+"/api/v1/auth/login", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	body, _ = json.Marshal(dto.LoginRequest{Email: "verify@example.com", Password: "Password123"})
	resp, err = http.Post(s.BaseURL+"/api/v1/auth/login", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	// The code was consumed
	body, _ = json.Marshal(dto.VerifyCodeRequest{Code: code, NewPassword: "AnotherPassword"})
	resp, err = http.Post(s.BaseURL+"/api/v1/password/verify", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	resp.Body.Close()
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *Suite) TestPasswordVerify_UnknownCode() {
	body, _ := json.Marshal(dto.VerifyCodeRequest{Code: "000000", NewPassword: "BrandNewPassword"})

	resp, err := http.Post(s.BaseURL+"/api/v1/password/verify", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *Suite) TestPasswordResend_IssuesAnotherCode() {
	s.register("resend@example.com")

	for _, path := range []string{"/api/v1/password/recover", "/api/v1/password/resend"} {
		body, _ := json.Marshal(dto.RecoverPasswordRequest{Email: "resend@example.com"})
		resp, err := http.Post(s.BaseURL+path, "application/json", bytes.NewBuffer(body))
		s.Require().NoError(err)
		resp.Body.Close()
		s.Equal(http.StatusOK, resp.StatusCode)
	}

	var count int
	err := s.Postgres.DB.QueryRow("SELECT COUNT(*) FROM password_resets").Scan(&count)
	s.Require().NoError(err)
	s.Equal(2, count)
}
