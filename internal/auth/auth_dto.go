package auth

type LoginRequest struct {
	LoginID  string `json:"login_id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	User        ActorDetail `json:"user"`
}

type ActorDetail struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Division string `json:"division"`
	Team     string `json:"team"`
	Role     string `json:"role"`
}
