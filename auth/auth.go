package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"moyo/cart"
	"moyo/globals"
	"moyo/middleware"
	"moyo/models"
	"moyo/rdx"
	"moyo/upstream"
	"moyo/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

// Minimum gap between OTP mails for the same address.
const otpCooldown = time.Minute

// Handlers proxies authentication to the remote backend and manages the
// gateway's own sessions.
type Handlers struct {
	API  *upstream.Client
	Cart *cart.Service
}

func NewHandlers(api *upstream.Client, cartSvc *cart.Service) *Handlers {
	return &Handlers{API: api, Cart: cartSvc}
}

// Login authenticates against the backend (or the local warehouse
// credential) and returns a gateway session token.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if input.Email == "" || input.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	if warehouseLogin(input.Email, input.Password) {
		h.respondWithSession(ctx, w, models.Session{
			UserID:    warehouseUserID,
			Email:     input.Email,
			Name:      "Warehouse Manager",
			Roles:     []string{"warehouse-manager"},
			CreatedAt: time.Now().Unix(),
		}, nil)
		return
	}

	resp, err := h.API.Login(ctx, input.Email, input.Password)
	if err != nil {
		log.Println("login failed:", err)
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	userID := gatewayUserID(resp.User.ID)
	storeUpstreamToken(userID, resp.AccessToken)
	h.respondWithSession(ctx, w, models.Session{
		UserID:    userID,
		Email:     resp.User.Email,
		Name:      resp.User.FirstName + " " + resp.User.LastName,
		Roles:     []string{"customer"},
		RemoteID:  resp.User.ID,
		CreatedAt: time.Now().Unix(),
	}, &resp.User)
}

func (h *Handlers) respondWithSession(ctx context.Context, w http.ResponseWriter, session models.Session, user *models.User) {
	token, err := mintSessionToken(session.UserID, session.Name, session.Roles)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}
	saveSession(ctx, session)

	payload := utils.M{
		"token":  token,
		"userid": session.UserID,
		"roles":  session.Roles,
	}
	if user != nil {
		payload["user"] = user
	}
	utils.SendResponse(w, http.StatusOK, payload, "Login successful", nil)
}

// Register creates a customer account upstream.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if input.Email == "" || input.Password == "" || input.FirstName == "" {
		http.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}

	user, err := h.API.Signup(ctx, input)
	if err != nil {
		status := http.StatusInternalServerError
		if apiErr, ok := err.(*upstream.APIError); ok && apiErr.Status == http.StatusConflict {
			status = http.StatusConflict
		}
		http.Error(w, "Failed to register user", status)
		return
	}

	utils.SendResponse(w, http.StatusCreated, utils.M{"userid": gatewayUserID(user.ID), "user": user}, "User registered", nil)
}

// RequestOTP asks the backend to mail a login code.
func (h *Handlers) RequestOTP(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Email == "" {
		http.Error(w, "Email is required", http.StatusBadRequest)
		return
	}

	cooldownKey := "otp:cooldown:" + input.Email
	if pending, err := rdx.RdxGet(cooldownKey); err == nil && pending != "" {
		http.Error(w, "OTP already sent, try again shortly", http.StatusTooManyRequests)
		return
	}

	if err := h.API.RequestOTP(ctx, input.Email); err != nil {
		log.Println("request OTP failed:", err)
		http.Error(w, "Failed to send OTP", http.StatusBadGateway)
		return
	}
	if err := rdx.SetWithExpiry(cooldownKey, "1", otpCooldown); err != nil {
		log.Println("OTP cooldown write failed:", err)
	}
	utils.SendResponse(w, http.StatusOK, nil, "OTP sent to email", nil)
}

// VerifyOTP exchanges an emailed code for a session.
func (h *Handlers) VerifyOTP(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Email == "" || input.OTP == "" {
		http.Error(w, "Email and OTP are required", http.StatusBadRequest)
		return
	}

	resp, err := h.API.VerifyOTP(ctx, input.Email, input.OTP)
	if err != nil {
		http.Error(w, "Invalid or expired OTP", http.StatusUnauthorized)
		return
	}
	if err := rdx.RdxDel("otp:cooldown:" + input.Email); err != nil {
		log.Println("OTP cooldown clear failed:", err)
	}

	userID := gatewayUserID(resp.User.ID)
	storeUpstreamToken(userID, resp.AccessToken)
	h.respondWithSession(ctx, w, models.Session{
		UserID:    userID,
		Email:     resp.User.Email,
		Name:      resp.User.FirstName + " " + resp.User.LastName,
		Roles:     []string{"customer"},
		RemoteID:  resp.User.ID,
		CreatedAt: time.Now().Unix(),
	}, &resp.User)
}

// Me returns the caller's session and, for customers, the backend profile.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	session, err := loadSession(ctx, userID)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	payload := utils.M{"session": session}
	if session.RemoteID > 0 {
		token := UpstreamToken(r, h.API)
		if user, err := h.API.FetchUser(ctx, token, session.RemoteID); err == nil {
			payload["user"] = user
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, payload)
}

// Logout drops the server-side upstream token and clears the user's cart.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	dropUpstreamToken(userID)
	deleteSession(ctx, userID)
	h.Cart.ClearCart(ctx, userID)

	utils.SendResponse(w, http.StatusOK, nil, "User logged out successfully", nil)
}

// RefreshToken extends a session that is close to expiry.
func (h *Handlers) RefreshToken(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	tokenString := r.Header.Get("Authorization")
	claims, err := middleware.ValidateJWT(tokenString)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	if time.Until(claims.ExpiresAt.Time) > 30*time.Minute {
		http.Error(w, "Token refresh not allowed yet", http.StatusForbidden)
		return
	}

	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(sessionTTL))
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	newTokenString, err := newToken.SignedString(globals.JwtSecret)
	if err != nil {
		http.Error(w, "Failed to refresh token", http.StatusInternalServerError)
		return
	}

	utils.SendResponse(w, http.StatusOK, map[string]string{"token": newTokenString}, "Token refreshed successfully", nil)
}
