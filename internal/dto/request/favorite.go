package request

type FavoriteRequest struct {
	UserID  int64 `json:"user_id" validate:"required,gt=0"`
	MovieID int64 `json:"movie_id" validate:"required,gt=0"`
}
