package dto

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Name     string  `json:"name" binding:"required"`
	Email    string  `json:"email" binding:"required"`
	Password string  `json:"password" binding:"required"`
	Phone    *string `json:"phone"`
	PhotoURL *string `json:"photo_url"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserPatch is a partial update of a user. Nil means "leave unchanged",
// a non-nil pointer means "set to this value".
type UserPatch struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Phone    *string `json:"phone"`
	PhotoURL *string `json:"photo_url"`
}

// RecoverPasswordRequest asks for a recovery code to be mailed
type RecoverPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// VerifyCodeRequest consumes a recovery code and sets a new password
type VerifyCodeRequest struct {
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// AddFavoriteRequest adds a title to the caller's favorites
type AddFavoriteRequest struct {
	TitleID        int64   `json:"title_id" binding:"required"`
	Title          string  `json:"title" binding:"required"`
	NumberEpisodes *int    `json:"number_episodes"`
	NumberSeasons  *int    `json:"number_seasons"`
	MediaType      *string `json:"media_type"`
}

// MarkCompletedRequest marks a series as completed
type MarkCompletedRequest struct {
	TitleID int64 `json:"title_id" binding:"required"`
}

// MarkWatchedRequest marks an episode as watched
type MarkWatchedRequest struct {
	TitleID  int64 `json:"title_id" binding:"required"`
	Season   int   `json:"season" binding:"required"`
	Episode  int   `json:"episode" binding:"required"`
	Duration int   `json:"duration"`
}
