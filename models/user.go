package models

// Role as the remote backend reports it.
type Role struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// User is the remote identity record. The gateway never stores passwords;
// the backend authenticates customers.
type User struct {
	ID         int    `json:"id"`
	RoleID     string `json:"role_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Status     string `json:"status"`
	Phone      string `json:"phone,omitempty"`
	Address1   string `json:"address1,omitempty"`
	Address2   string `json:"address2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	Country    string `json:"country,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
	UpdatedAt  string `json:"updated_at,omitempty"`
	Role       Role   `json:"role"`
}

// LoginRequest is the credentials body for upstream login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest creates a customer account upstream (role_id 3 = customer).
type SignupRequest struct {
	RoleID     int    `json:"role_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Status     string `json:"status,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Address1   string `json:"address1,omitempty"`
	Address2   string `json:"address2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	Country    string `json:"country,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

// LoginResponse is the upstream authentication response.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// Session is the gateway's durable record of a logged-in user.
type Session struct {
	UserID    string `json:"userid" bson:"userid"`
	Email     string `json:"email" bson:"email"`
	Name      string `json:"name" bson:"name"`
	Roles     []string `json:"roles" bson:"roles"`
	RemoteID  int    `json:"remoteId" bson:"remoteId"`
	CreatedAt int64  `json:"createdAt" bson:"createdAt"`
}
