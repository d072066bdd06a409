package upstream

import (
	"context"
	"net/http"

	"moyo/models"
)

// Login authenticates a customer against POST /login.
func (c *Client) Login(ctx context.Context, email, password string) (models.LoginResponse, error) {
	var resp models.LoginResponse
	err := c.doPlain(ctx, http.MethodPost, "/login", "", models.LoginRequest{
		Email:    email,
		Password: password,
	}, &resp)
	return resp, err
}

// Signup creates a customer account via POST /users. Role and status
// default to customer/active when unset.
func (c *Client) Signup(ctx context.Context, req models.SignupRequest) (models.User, error) {
	if req.RoleID == 0 {
		req.RoleID = 3 // customer
	}
	if req.Status == "" {
		req.Status = "active"
	}
	var user models.User
	err := c.do(ctx, http.MethodPost, "/users", "", req, &user)
	return user, err
}

// RequestOTP asks the backend to email a one-time code.
func (c *Client) RequestOTP(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/otp/login/email", "", map[string]string{"email": email}, nil)
}

// VerifyOTP exchanges an emailed code for a login response.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (models.LoginResponse, error) {
	var resp models.LoginResponse
	err := c.doPlain(ctx, http.MethodPost, "/otp/verify/email", "", map[string]string{
		"email": email,
		"otp":   otp,
	}, &resp)
	return resp, err
}

// FetchUser loads a user record by remote id.
func (c *Client) FetchUser(ctx context.Context, token string, userID int) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodGet, userPath(userID), token, nil, &user)
	return user, err
}
